package validate

import "github.com/birkland/iiif"

// Bundle is a named set of changes to the default validator, tailored to the
// documents published by one institution.  Patches are given the default
// behavior and are expected to call through to it, intervening only for the
// cases they correct.
type Bundle struct {
	Name        string
	Hosts       []string // Hostnames whose documents the bundle applies to
	Doc         string   // Short description of what the bundle tolerates
	Options     []Option
	Schemas     []SchemaPatch
	Fields      []FieldPatch
	Corrections []Correction
}

// SchemaPatch rewrites the schema of a node kind.
type SchemaPatch struct {
	Node  iiif.Type
	Patch func(Schema) Schema
}

// FieldPatch wraps the checker of one field of a node kind.  If the schema
// has no such field, the patch wraps Pass and the field is added as optional.
type FieldPatch struct {
	Node  iiif.Type
	Field string
	Patch func(FieldFunc) FieldFunc
}

// Correction rewrites a node before it is checked against its schema.
// Corrections must not modify their input; use CopyMap.
type Correction struct {
	Node iiif.Type
	Fix  FieldFunc
}

// WithBundle applies a bundle to the validator under construction.  Schema
// patches are applied before field patches, so a field patch sees the patched
// schema.
func WithBundle(b Bundle) Option {
	return func(v *Validator) {
		v.name = b.Name

		for _, opt := range b.Options {
			opt(v)
		}

		schemas := make(map[iiif.Type]Schema, len(v.schemas))
		for node, s := range v.schemas {
			schemas[node] = s
		}
		for _, p := range b.Schemas {
			schemas[p.Node] = p.Patch(schemas[p.Node].copy())
		}
		for _, p := range b.Fields {
			fn := Pass
			if f, ok := schemas[p.Node].Lookup(p.Field); ok {
				fn = f.Check
			}
			schemas[p.Node] = schemas[p.Node].Replace(p.Field, p.Patch(fn))
		}
		v.schemas = schemas

		corrections := make(map[iiif.Type][]FieldFunc, len(v.corrections))
		for node, fixes := range v.corrections {
			corrections[node] = append([]FieldFunc(nil), fixes...)
		}
		for _, c := range b.Corrections {
			corrections[c.Node] = append(corrections[c.Node], c.Fix)
		}
		v.corrections = corrections
	}
}

// CopyMap makes a shallow copy of a node.
func CopyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
