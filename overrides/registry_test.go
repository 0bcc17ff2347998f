package overrides_test

import (
	"testing"

	"github.com/birkland/iiif/overrides"
	"github.com/birkland/iiif/validate"
	"github.com/go-test/deep"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		host     string
		expected string
	}{
		{"iiif.lib.harvard.edu", "harvard"},
		{"http://digi.vatlib.it/iiif/MSS_Vat.lat.3225/manifest.json", "vatlib"},
		{"purl.stanford.edu", "stanford"},
		{"www.wdl.org", "wdl"},
		{"iiif.archivelab.org", "archivelab"},
		{"gallica.bnf.fr", "gallica"},
		{"bnf.fr", ""},
		{"example.org", ""},
		{"", ""},
	}

	r := overrides.Default()
	for _, c := range cases {
		b, ok := r.Lookup(c.host)
		if ok != (c.expected != "") || b.Name != c.expected {
			t.Errorf("Lookup(%q): expected %q, got %q", c.host, c.expected, b.Name)
		}
	}
}

func TestBundlesOrdered(t *testing.T) {
	var names []string
	for _, b := range overrides.Default().Bundles() {
		names = append(names, b.Name)
	}

	expected := []string{"harvard", "vatlib", "stanford", "wdl", "archivelab", "gallica"}
	if diff := deep.Equal(names, expected); diff != nil {
		t.Error(diff)
	}
}

func TestDuplicates(t *testing.T) {
	if _, err := overrides.NewRegistry(overrides.Stanford(), overrides.Stanford()); err == nil {
		t.Errorf("duplicate bundle names should be rejected")
	}

	clash := overrides.WDL()
	clash.Name = "other"
	clash.Hosts = []string{"STANFORD.edu"}
	if _, err := overrides.NewRegistry(overrides.Stanford(), clash); err == nil {
		t.Errorf("hosts claimed twice should be rejected")
	}

	if _, err := overrides.NewRegistry(validate.Bundle{Hosts: []string{"example.org"}}); err == nil {
		t.Errorf("nameless bundles should be rejected")
	}
}

func TestAliases(t *testing.T) {
	r, err := overrides.Default().WithAliases(map[string]string{
		"iiif.lib.example.edu": "harvard",
	})
	if err != nil {
		t.Fatal(err)
	}

	if b, ok := r.Lookup("iiif.lib.example.edu"); !ok || b.Name != "harvard" {
		t.Errorf("alias did not resolve, got %q", b.Name)
	}
	if _, ok := overrides.Default().Lookup("iiif.lib.example.edu"); ok {
		t.Errorf("aliases must not modify the original registry")
	}
	if diff := deep.Equal(r.Hosts("harvard"), []string{"harvard.edu", "iiif.lib.example.edu"}); diff != nil {
		t.Error(diff)
	}

	if _, err := r.WithAliases(map[string]string{"example.org": "nope"}); err == nil {
		t.Errorf("aliases to unknown bundles should be rejected")
	}
}

func TestWithout(t *testing.T) {
	r, err := overrides.Default().Without("vatlib")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := r.Lookup("digi.vatlib.it"); ok {
		t.Errorf("disabled bundle still selected")
	}
	if len(r.Bundles()) != 5 {
		t.Errorf("expected 5 bundles, got %d", len(r.Bundles()))
	}
	if len(overrides.Default().Bundles()) != 6 {
		t.Errorf("Without must not modify the original registry")
	}

	if _, err := r.Without("vatlib"); err == nil {
		t.Errorf("disabling an unknown bundle should fail")
	}
}

func TestSetSelectsValidator(t *testing.T) {
	set := overrides.Default().Build(validate.RaiseWarnings(false))

	if name := set.For("iiif.lib.harvard.edu").Name(); name != "harvard" {
		t.Errorf("expected harvard, got %s", name)
	}
	if name := set.For("example.org").Name(); name != "default" {
		t.Errorf("expected default, got %s", name)
	}

	d := manifest("http://example.org/iiif/manifest")
	if _, name := set.Validate(d); name != "default" {
		t.Errorf("expected default, got %s", name)
	}
}
