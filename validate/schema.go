package validate

import "fmt"

// FieldFunc checks one value and returns its corrected form.  A rejected value
// is signalled by returning a *Failure or Failures; corrections that are applied
// silently should be reported with Context.Warn.
//
// The context passed to a FieldFunc is located at the value itself, so the last
// segment of its path is the field name (or list index) being checked.
type FieldFunc func(c *Context, value interface{}) (interface{}, error)

// Field binds a checker to a map key.
type Field struct {
	Name     string
	Required bool
	Check    FieldFunc
}

// Required declares a key that must be present.
func Required(name string, fn FieldFunc) Field {
	return Field{Name: name, Required: true, Check: fn}
}

// Key declares a key that may be absent.
func Key(name string, fn FieldFunc) Field {
	return Field{Name: name, Check: fn}
}

// Schema describes the keys of one kind of node.  Keys not named by the schema
// are passed through unchecked.
type Schema []Field

// Check applies the schema to a map.  Every field is checked, whether or not an
// earlier one failed.  The corrected map is a copy; the input is not modified.
func (s Schema) Check(c *Context, value interface{}) (interface{}, error) {
	m, ok := value.(map[string]interface{})
	if !ok {
		return value, Fail(CodeInvalidType, "expected a dictionary, got %s", describe(value))
	}

	out := CopyMap(m)

	var fails Failures
	for _, f := range s {
		v, present := m[f.Name]
		if !present {
			if f.Required {
				fails = append(fails, Fail(CodeRequired, "required key '%s' not provided", f.Name))
			}
			continue
		}

		corrected, err := f.Check(c.At(f.Name), v)
		if err != nil {
			fails = append(fails, failuresOf(err, f.Name)...)
			continue
		}
		out[f.Name] = corrected
	}

	return out, fails.err()
}

// Lookup finds the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// With returns a copy of the schema where the named field is replaced by f, or
// f is appended if there was no such field.
func (s Schema) With(f Field) Schema {
	out := s.copy()
	for i := range out {
		if out[i].Name == f.Name {
			out[i] = f
			return out
		}
	}
	return append(out, f)
}

// Replace returns a copy of the schema with the named field's checker replaced,
// keeping its required flag.  An absent field is added as optional.
func (s Schema) Replace(name string, fn FieldFunc) Schema {
	f, ok := s.Lookup(name)
	if !ok {
		f = Key(name, fn)
	}
	f.Check = fn
	return s.With(f)
}

// Require returns a copy of the schema with the named field's required flag set.
func (s Schema) Require(name string, required bool) Schema {
	f, ok := s.Lookup(name)
	if !ok {
		return s.copy()
	}
	f.Required = required
	return s.With(f)
}

// Without returns a copy of the schema that no longer checks the named field.
func (s Schema) Without(name string) Schema {
	out := make(Schema, 0, len(s))
	for _, f := range s {
		if f.Name != name {
			out = append(out, f)
		}
	}
	return out
}

func (s Schema) copy() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	copy(out, s)
	return out
}

// describe renders a value for use in messages.
func describe(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("'%s'", v)
	case map[string]interface{}:
		return "a dictionary"
	case []interface{}:
		return "a list"
	default:
		return fmt.Sprintf("%v", v)
	}
}
