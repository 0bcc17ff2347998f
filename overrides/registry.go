package overrides

import (
	"sort"
	"sync"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/internal/resolv"
	"github.com/birkland/iiif/metadata"
	"github.com/birkland/iiif/validate"
	"github.com/pkg/errors"
)

// Registry maps hostnames to bundles.  A Registry is never modified once
// built; WithAliases and Without return new registries.
type Registry struct {
	order   []string
	bundles map[string]validate.Bundle
	hosts   map[string]string // hostname -> bundle name
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Builtins returns the bundles for every library with known deviations.
func Builtins() []validate.Bundle {
	return []validate.Bundle{
		Harvard(),
		Vatlib(),
		Stanford(),
		WDL(),
		Archivelab(),
		Gallica(),
	}
}

// Default returns the registry of built-in bundles.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(Builtins()...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewRegistry builds a registry of the given bundles.  Bundle names must be
// unique, and no host may be claimed by two bundles.
func NewRegistry(bundles ...validate.Bundle) (*Registry, error) {
	r := &Registry{
		bundles: make(map[string]validate.Bundle, len(bundles)),
		hosts:   make(map[string]string),
	}

	for _, b := range bundles {
		if b.Name == "" {
			return nil, errors.Errorf("bundle for hosts %v has no name", b.Hosts)
		}
		if _, dup := r.bundles[b.Name]; dup {
			return nil, errors.Errorf("duplicate bundle %s", b.Name)
		}
		r.bundles[b.Name] = b
		r.order = append(r.order, b.Name)

		for _, h := range b.Hosts {
			if err := r.claim(h, b.Name); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func (r *Registry) claim(host, name string) error {
	h := resolv.Hostname(host)
	if h == "" {
		return errors.Errorf("bundle %s: bad hostname '%s'", name, host)
	}
	if other, ok := r.hosts[h]; ok && other != name {
		return errors.Errorf("host %s is claimed by both %s and %s", h, other, name)
	}
	r.hosts[h] = name
	return nil
}

func (r *Registry) clone() *Registry {
	c := &Registry{
		order:   append([]string(nil), r.order...),
		bundles: make(map[string]validate.Bundle, len(r.bundles)),
		hosts:   make(map[string]string, len(r.hosts)),
	}
	for k, v := range r.bundles {
		c.bundles[k] = v
	}
	for k, v := range r.hosts {
		c.hosts[k] = v
	}
	return c
}

// WithAliases returns a registry where additional hosts select existing
// bundles.  Aliases map hostname to bundle name, and take precedence over the
// hosts the bundles declare themselves.
func (r *Registry) WithAliases(aliases map[string]string) (*Registry, error) {
	c := r.clone()
	for host, name := range aliases {
		if _, ok := c.bundles[name]; !ok {
			return nil, errors.Errorf("alias %s refers to unknown bundle %s", host, name)
		}
		h := resolv.Hostname(host)
		if h == "" {
			return nil, errors.Errorf("alias for bundle %s: bad hostname '%s'", name, host)
		}
		c.hosts[h] = name
	}
	return c, nil
}

// Without returns a registry with the named bundles removed.  Hosts that
// selected them fall back to the default validator.
func (r *Registry) Without(names ...string) (*Registry, error) {
	c := r.clone()
	for _, name := range names {
		if _, ok := c.bundles[name]; !ok {
			return nil, errors.Errorf("cannot disable unknown bundle %s", name)
		}
		delete(c.bundles, name)
		for h, n := range c.hosts {
			if n == name {
				delete(c.hosts, h)
			}
		}
	}

	order := c.order[:0]
	for _, name := range c.order {
		if _, ok := c.bundles[name]; ok {
			order = append(order, name)
		}
	}
	c.order = order

	return c, nil
}

// Bundles lists the registered bundles, in registration order.
func (r *Registry) Bundles() []validate.Bundle {
	out := make([]validate.Bundle, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.bundles[name])
	}
	return out
}

// Hosts lists the hostnames selecting the named bundle, aliases included.
func (r *Registry) Hosts(name string) []string {
	var hosts []string
	for h, n := range r.hosts {
		if n == name {
			hosts = append(hosts, h)
		}
	}
	sort.Strings(hosts)
	return hosts
}

// Lookup finds the bundle for a hostname (or URI).  The host is tried first,
// then each of its parent domains.
func (r *Registry) Lookup(host string) (validate.Bundle, bool) {
	for _, candidate := range resolv.Candidates(host) {
		if name, ok := r.hosts[candidate]; ok {
			return r.bundles[name], true
		}
	}
	return validate.Bundle{}, false
}

// Validator builds a validator for documents from the given host.  Hosts
// without a bundle get the default validator.
func (r *Registry) Validator(host string, opts ...validate.Option) *validate.Validator {
	if b, ok := r.Lookup(host); ok {
		opts = append(opts[:len(opts):len(opts)], validate.WithBundle(b))
	}
	return validate.New(opts...)
}

// ForDocument builds a validator for a document, selected by the host of its
// @id.
func (r *Registry) ForDocument(doc metadata.Document, opts ...validate.Option) *validate.Validator {
	return r.Validator(metadata.Hostname(doc), opts...)
}

// Build constructs one validator per bundle, plus the default validator, all
// configured with the given options.
func (r *Registry) Build(opts ...validate.Option) *Set {
	s := &Set{
		registry:   r,
		def:        validate.New(opts...),
		validators: make(map[string]*validate.Validator, len(r.bundles)),
	}
	for _, name := range r.order {
		bundleOpts := append(opts[:len(opts):len(opts)], validate.WithBundle(r.bundles[name]))
		s.validators[name] = validate.New(bundleOpts...)
	}
	return s
}

// Set holds prebuilt validators for every bundle of a registry.  Like the
// validators it holds, a Set is safe for concurrent use.
type Set struct {
	registry   *Registry
	def        *validate.Validator
	validators map[string]*validate.Validator
}

// For returns the validator for documents from the given host.
func (s *Set) For(host string) *validate.Validator {
	if b, ok := s.registry.Lookup(host); ok {
		return s.validators[b.Name]
	}
	return s.def
}

// ForDocument returns the validator for a document, selected by the host of
// its @id.
func (s *Set) ForDocument(doc metadata.Document) *validate.Validator {
	return s.For(metadata.Hostname(doc))
}

// Validate validates a manifest with the validator selected for it, returning
// the outcome and the name of the validator used.
func (s *Set) Validate(doc metadata.Document) (validate.Outcome, string) {
	return s.ValidateAt(iiif.Manifest, doc)
}

// ValidateAt validates a standalone document of the given node kind, such as a
// canvas or annotation, with the validator selected by its @id.
func (s *Set) ValidateAt(node iiif.Type, doc metadata.Document) (validate.Outcome, string) {
	v := s.ForDocument(doc)
	return v.ValidateAt(node, doc, nil), v.Name()
}
