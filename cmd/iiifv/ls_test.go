package main

import (
	"testing"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
)

func TestListing(t *testing.T) {
	doc := metadata.Document{
		"@id": "http://example.org/iiif/book1/manifest",
		"label": []interface{}{
			map[string]interface{}{"@language": "en", "@value": "Book 1"},
			map[string]interface{}{"@language": "fr", "@value": "Livre 1"},
		},
		"metadata": []interface{}{
			map[string]interface{}{"label": "Author", "value": "Anne"},
			map[string]interface{}{"label": "Date", "value": []interface{}{
				map[string]interface{}{"@language": "en", "@value": "1850"},
				map[string]interface{}{"@language": "fr", "@value": "vers 1850"},
			}},
		},
	}
	ref := iiif.DocumentRef{Addr: "dumps/book1.json"}

	cases := []struct {
		lang     string
		meta     []string
		expected string
	}{
		{"en", nil, "dumps/book1.json    http://example.org/iiif/book1/manifest    -    Book 1"},
		{"fr", []string{"author", "DATE"}, "dumps/book1.json    http://example.org/iiif/book1/manifest    -    Livre 1    Anne    vers 1850"},
		{"en", []string{"Publisher"}, "dumps/book1.json    http://example.org/iiif/book1/manifest    -    Book 1    -"},
	}

	for _, c := range cases {
		if line := listing(ref, doc, "-", c.lang, c.meta); line != c.expected {
			t.Errorf("expected %q, got %q", c.expected, line)
		}
	}
}
