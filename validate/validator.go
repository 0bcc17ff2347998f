package validate

import (
	"fmt"

	"github.com/birkland/iiif"
	"github.com/pkg/errors"
)

// OnCheck selects how an image annotation's 'on' target is compared with the
// @id of the canvas it is painted on.
type OnCheck int

// Annotation target policies
const (
	// OnMustEqualCanvas requires 'on' to reference the enclosing canvas.
	OnMustEqualCanvas OnCheck = iota

	// OnMustDifferFromCanvas rejects annotations whose 'on' equals the canvas
	// @id.  This reproduces results produced by earlier releases, which had the
	// comparison inverted; use it only to compare against those results.
	OnMustDifferFromCanvas

	// OnUnchecked only requires 'on' to be a URI.
	OnUnchecked
)

// DefaultOnCheck is the annotation target policy of validators built by New.
const DefaultOnCheck = OnMustEqualCanvas

func (o OnCheck) String() string {
	switch o {
	case OnMustEqualCanvas:
		return "equal"
	case OnMustDifferFromCanvas:
		return "differ"
	case OnUnchecked:
		return "off"
	}
	return "unknown"
}

// ParseOnCheck parses the names produced by OnCheck.String
func ParseOnCheck(name string) (OnCheck, error) {
	for _, o := range []OnCheck{OnMustEqualCanvas, OnMustDifferFromCanvas, OnUnchecked} {
		if o.String() == name {
			return o, nil
		}
	}
	return DefaultOnCheck, errors.Errorf("unknown annotation target policy '%s'", name)
}

// Validator validates manifests.  It is immutable once built, and safe for
// concurrent use.
type Validator struct {
	name             string
	raiseWarnings    bool
	warningsAsErrors bool
	onCheck          OnCheck
	schemas          map[iiif.Type]Schema
	corrections      map[iiif.Type][]FieldFunc
}

// Option configures a Validator under construction.
type Option func(*Validator)

// RaiseWarnings controls whether warnings are collected (the default) or
// silently dropped.  Corrections are applied either way.
func RaiseWarnings(raise bool) Option {
	return func(v *Validator) {
		v.raiseWarnings = raise
	}
}

// WarningsAsErrors makes any warning render the document invalid.
func WarningsAsErrors(strict bool) Option {
	return func(v *Validator) {
		v.warningsAsErrors = strict
	}
}

// WithOnCheck sets the annotation target policy.
func WithOnCheck(o OnCheck) Option {
	return func(v *Validator) {
		v.onCheck = o
	}
}

// New builds a validator with the default schemas, as modified by the given
// options.
func New(opts ...Option) *Validator {
	v := &Validator{
		name:          "default",
		raiseWarnings: true,
		onCheck:       DefaultOnCheck,
		schemas:       defaultSchemas(),
		corrections:   make(map[iiif.Type][]FieldFunc),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Name identifies the validator's configuration: "default", or the name of the
// bundle it was built with.
func (v *Validator) Name() string {
	return v.name
}

// Schema returns a copy of the schema used for the given node kind.
func (v *Validator) Schema(node iiif.Type) Schema {
	return v.schemas[node].copy()
}

// Validate checks a decoded manifest.
func (v *Validator) Validate(doc interface{}) Outcome {
	return v.ValidateAt(iiif.Manifest, doc, nil)
}

// ValidateAt checks a value as the given node kind, located at the given path
// in its enclosing document.  Nothing panics out of ValidateAt; an unexpected
// failure is reported as an error diagnostic.
func (v *Validator) ValidateAt(node iiif.Type, value interface{}, path Path) (out Outcome) {
	c := &Context{
		v:    v,
		path: path.Join(),
		acc:  newAccumulator(),
	}

	defer func() {
		if r := recover(); r != nil {
			c.acc.add(Diagnostic{
				Kind:    Error,
				Code:    CodeInternal,
				Message: fmt.Sprintf("validation aborted: %v", r),
				Path:    c.Path(),
			})
			out = c.outcome(value)
		}
	}()

	return c.outcome(c.Sub(node, value))
}

// check validates a value as the given node kind.  Sequence lists and canvases
// are run by their own validators; every other kind is its schema.
func (v *Validator) check(c *Context, node iiif.Type, value interface{}) (interface{}, error) {
	switch node {
	case iiif.Sequence:
		return v.sequences(c, value)
	case iiif.Canvas:
		return v.canvas(c, value)
	}
	return v.apply(c, node, value)
}

// apply runs the corrections registered for a node kind, then checks the
// corrected value against the node's schema.
func (v *Validator) apply(c *Context, node iiif.Type, value interface{}) (interface{}, error) {
	schema, ok := v.schemas[node]
	if !ok {
		return value, Fail(CodeInternal, "no schema for %s", node)
	}

	var fails Failures
	for _, fix := range v.corrections[node] {
		fixed, err := fix(c, value)
		if err != nil {
			fails = append(fails, failuresOf(err)...)
			continue
		}
		value = fixed
	}

	corrected, err := schema.Check(c, value)
	fails = append(fails, failuresOf(err)...)

	return corrected, fails.err()
}
