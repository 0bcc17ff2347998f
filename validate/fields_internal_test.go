package validate

import (
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
)

func testContext(field string) *Context {
	c := &Context{v: New(), acc: newAccumulator()}
	return c.At(field)
}

func TestURI(t *testing.T) {
	cases := []struct {
		name  string
		fn    FieldFunc
		value interface{}
		err   string
	}{
		{"http", URI, "http://example.org/a", ""},
		{"urn", URI, "urn:x-example:foo", "URI is not valid: 'urn:x-example:foo'"},
		{"embedded", URI, map[string]interface{}{"@id": "https://example.org/a", "format": "text/html"}, ""},
		{"embeddedMissing", URI, map[string]interface{}{"format": "text/html"}, "URI not found: expected an @id in a dictionary"},
		{"embeddedBad", URI, map[string]interface{}{"@id": "nope"}, "URI is not valid: 'nope' @ ['@id']"},
		{"number", URI, 7, "Can't parse URI: 7"},
		{"relative", URI, "/iiif/manifest", "URI is not valid: '/iiif/manifest'"},
		{"ftp", URI, "ftp://example.org/a", ""},
		{"httpOnly", HTTPURI, "ftp://example.org/a", "URI must be http: 'ftp://example.org/a'"},
		{"https", HTTPURI, "https://example.org/a", ""},
		{"repeatable", RepeatableURI, []interface{}{"http://example.org/a", "bad"}, "URI is not valid: 'bad' @ [1]"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			value, err := c.fn(testContext("seeAlso"), c.value)
			if c.err == "" {
				if err != nil {
					t.Errorf("unexpected error %s", err)
				}
			} else if err == nil || failuresOf(err).Error() != c.err {
				t.Errorf("expected error %q, got %v", c.err, err)
			}
			if diff := deep.Equal(value, c.value); diff != nil {
				t.Errorf("value should pass through unchanged: %v", diff)
			}
		})
	}
}

func TestIntOrNumericString(t *testing.T) {
	cases := []struct {
		value    interface{}
		expected interface{}
		warned   bool
		ok       bool
	}{
		{1000, 1000, false, true},
		{float64(1000), float64(1000), false, true},
		{1000.5, 1000.5, false, false},
		{json.Number("1000"), json.Number("1000"), false, true},
		{json.Number("10.5"), json.Number("10.5"), false, false},
		{"10", 10, true, true},
		{" 10 ", 10, true, true},
		{"ten", "ten", false, false},
		{nil, nil, false, false},
	}

	for _, c := range cases {
		ctx := testContext("height")
		value, err := IntOrNumericString(ctx, c.value)

		if (err == nil) != c.ok {
			t.Errorf("%#v: expected ok=%t, got %v", c.value, c.ok, err)
		}
		if diff := deep.Equal(value, c.expected); diff != nil {
			t.Errorf("%#v: %v", c.value, diff)
		}
		if warned := len(ctx.acc.diags) > 0; warned != c.warned {
			t.Errorf("%#v: expected warned=%t", c.value, c.warned)
		}
	}
}

func TestStrOrLangValue(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		err   string
	}{
		{"string", "Book", ""},
		{"pair", map[string]interface{}{"@language": "en", "@value": "Book"}, ""},
		{"list", []interface{}{"Book", map[string]interface{}{"@language": "fr", "@value": "Livre"}}, ""},
		{"nested", []interface{}{[]interface{}{"Book"}}, "Overly nested value: lists of strings or lang-value pairs may not contain lists @ [0]"},
		{"badPair", map[string]interface{}{"@value": "Book"}, "required key '@language' not provided"},
		{"number", 12, "expected a string or lang-value pair, got 12"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := StrOrLangValue(testContext("label"), c.value)
			if c.err == "" && err != nil {
				t.Errorf("unexpected error %s", err)
			}
			if c.err != "" && (err == nil || failuresOf(err).Error() != c.err) {
				t.Errorf("expected error %q, got %v", c.err, err)
			}
		})
	}
}

func TestRepeatableString(t *testing.T) {
	if _, err := RepeatableString(testContext("license"), []interface{}{"a", "b"}); err != nil {
		t.Error(err)
	}
	if _, err := RepeatableString(testContext("license"), []interface{}{"a", []interface{}{"b"}}); err == nil {
		t.Errorf("nested strings should fail")
	}
}

func TestOptional(t *testing.T) {
	for _, empty := range []interface{}{nil, "", []interface{}{}, map[string]interface{}{}} {
		ctx := testContext("logo")
		if _, err := Optional(URI)(ctx, empty); err != nil {
			t.Errorf("empty value %#v should pass, got %s", empty, err)
		}

		expected := []string{"Warning: 'logo' field should not be included if it is empty. @ data['logo']"}
		var got []string
		for _, d := range ctx.acc.diags {
			got = append(got, d.String())
		}
		if diff := deep.Equal(got, expected); diff != nil {
			t.Error(diff)
		}
	}

	if _, err := Optional(URI)(testContext("logo"), "nope"); err == nil {
		t.Errorf("non-empty values should still be checked")
	}
}

func TestOneOf(t *testing.T) {
	fn := OneOf(viewingHints...)
	if _, err := fn(testContext("viewingHint"), "paged"); err != nil {
		t.Error(err)
	}

	_, err := fn(testContext("viewingHint"), "sideways")
	expected := "viewingHint must be one of [individuals, paged, continuous], got 'sideways'"
	if err == nil || err.Error() != expected {
		t.Errorf("expected %q, got %v", expected, err)
	}
}

func TestProfile(t *testing.T) {
	profile := []interface{}{"http://iiif.io/api/image/2/level2.json", map[string]interface{}{"formats": []interface{}{"gif"}}}
	if _, err := Profile(testContext("profile"), profile); err != nil {
		t.Error(err)
	}
	if _, err := Profile(testContext("profile"), []interface{}{map[string]interface{}{"formats": "gif"}}); err == nil {
		t.Errorf("a profile list must start with a URI")
	}
}
