package validate

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/birkland/iiif"
)

// Pass accepts any value unchanged.
func Pass(c *Context, value interface{}) (interface{}, error) {
	return value, nil
}

// NotAllowed rejects the key outright.
func NotAllowed(c *Context, value interface{}) (interface{}, error) {
	return value, Fail(CodeNotAllowed, "Key is not allowed here.")
}

// Literal accepts exactly the given string.
func Literal(expected string) FieldFunc {
	return func(c *Context, value interface{}) (interface{}, error) {
		if s, ok := value.(string); ok && s == expected {
			return s, nil
		}
		return value, Fail(CodeInvalidValue, "not a valid value for '%s': expected '%s', got %s",
			c.Field(), expected, describe(value))
	}
}

// OneOf accepts any of the given strings.
func OneOf(allowed ...string) FieldFunc {
	return func(c *Context, value interface{}) (interface{}, error) {
		if s, ok := value.(string); ok {
			for _, a := range allowed {
				if s == a {
					return s, nil
				}
			}
		}
		return value, Fail(CodeInvalidValue, "%s must be one of [%s], got %s",
			c.Field(), strings.Join(allowed, ", "), describe(value))
	}
}

// String accepts a single string.
func String(c *Context, value interface{}) (interface{}, error) {
	if _, ok := value.(string); !ok {
		return value, Fail(CodeInvalidType, "expected a string, got %s", describe(value))
	}
	return value, nil
}

// Optional wraps a checker so that an empty value (null, "", [] or {}) is
// tolerated with a warning instead of being checked.
func Optional(fn FieldFunc) FieldFunc {
	return func(c *Context, value interface{}) (interface{}, error) {
		if isEmpty(value) {
			c.Warn(CodeEmptyField, "'"+c.Field()+"' field should not be included if it is empty.")
			return value, nil
		}
		return fn(c, value)
	}
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	}
	return false
}

// falsy reports whether a value would be considered false by a JSON consumer:
// empty, false or zero.
func falsy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	}
	return isEmpty(value)
}

// Each applies fn to every item of a list, collecting every failure.  Items are
// checked with contexts located at their index.
func Each(c *Context, list []interface{}, fn FieldFunc) ([]interface{}, error) {
	out := make([]interface{}, len(list))
	var fails Failures
	for i, item := range list {
		corrected, err := fn(c.At(i), item)
		if err != nil {
			fails = append(fails, failuresOf(err, i)...)
		}
		out[i] = corrected
	}
	return out, fails.err()
}

// RepeatableString accepts a string or a flat list of strings.
func RepeatableString(c *Context, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []interface{}:
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return value, Fail(CodeInvalidType, "Overly nested strings: expected a list of strings, found %s", describe(item))
			}
		}
		return v, nil
	}
	return value, Fail(CodeInvalidType, "expected a string or list of strings, got %s", describe(value))
}

// StrOrLangValue accepts a string, a lang-value pair, or a list of those.  Lists
// may not be nested.
func StrOrLangValue(c *Context, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		return c.Check(iiif.LangValue, v)
	case []interface{}:
		return Each(c, v, func(c *Context, item interface{}) (interface{}, error) {
			if _, nested := item.([]interface{}); nested {
				return item, Fail(CodeInvalidType, "Overly nested value: lists of strings or lang-value pairs may not contain lists")
			}
			return StrOrLangValue(c, item)
		})
	}
	return value, Fail(CodeInvalidType, "expected a string or lang-value pair, got %s", describe(value))
}

// URI accepts a URI string, or a map embedding one as its @id.  The value is
// passed through unchanged.
func URI(c *Context, value interface{}) (interface{}, error) {
	return value, checkURI(value, false)
}

// HTTPURI is URI, restricted to the http and https schemes.
func HTTPURI(c *Context, value interface{}) (interface{}, error) {
	return value, checkURI(value, true)
}

// RepeatableURI accepts a URI or a list of them.
func RepeatableURI(c *Context, value interface{}) (interface{}, error) {
	if list, ok := value.([]interface{}); ok {
		return Each(c, list, URI)
	}
	return URI(c, value)
}

func checkURI(value interface{}, http bool) error {
	switch v := value.(type) {
	case string:
		return checkURIString(v, http)
	case map[string]interface{}:
		id, ok := v["@id"]
		if !ok || isEmpty(id) {
			return Fail(CodeInvalidURI, "URI not found: expected an @id in %s", describe(value))
		}
		s, ok := id.(string)
		if !ok {
			return Fail(CodeInvalidURI, "URI is not a string: %s", describe(id)).At("@id")
		}
		if err := checkURIString(s, http); err != nil {
			return err.(*Failure).At("@id")
		}
		return nil
	}
	return Fail(CodeInvalidURI, "Can't parse URI: %s", describe(value))
}

func checkURIString(s string, http bool) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Fail(CodeInvalidURI, "URI is not valid: '%s'", s)
	}
	if http && u.Scheme != "http" && u.Scheme != "https" {
		return Fail(CodeInvalidURI, "URI must be http: '%s'", s)
	}
	return nil
}

// URIOf extracts the URI from a value accepted by URI, or "" if there is none.
func URIOf(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		s, _ := v["@id"].(string)
		return s
	}
	return ""
}

// IntOrNumericString accepts an integer.  A string holding an integer is
// replaced by that integer, with a warning.
func IntOrNumericString(c *Context, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int, int32, int64, uint, uint32, uint64:
		return v, nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return v, nil
		}
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return v, nil
		}
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return value, Fail(CodeInvalidType, "expected an integer, got %s", describe(value))
		}
		c.Warn(CodeCoerced, "Replaced string with int on height/width key.")
		return i, nil
	}
	return value, Fail(CodeInvalidType, "expected an integer, got %s", describe(value))
}
