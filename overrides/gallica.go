package overrides

import (
	"strings"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/validate"
)

// Gallica tolerates lang-value pairs without a language, as found in the
// manifests of the Bibliothèque nationale de France.
func Gallica() validate.Bundle {
	return validate.Bundle{
		Name:  "gallica",
		Hosts: []string{"gallica.bnf.fr"},
		Doc:   "'@language' optional in lang-value pairs; metadata values with unlabelled pairs are joined",
		Schemas: []validate.SchemaPatch{{
			Node: iiif.LangValue,
			Patch: func(s validate.Schema) validate.Schema {
				return s.Require("@language", false)
			},
		}},
		Fields: []validate.FieldPatch{{
			Node:  iiif.Manifest,
			Field: "metadata",
			Patch: func(next validate.FieldFunc) validate.FieldFunc {
				return func(c *validate.Context, value interface{}) (interface{}, error) {
					return next(c, joinUnlabelled(c, value))
				}
			},
		}},
	}
}

// joinUnlabelled replaces metadata values that are lists containing a pair
// without a language by the values of the list joined into one string.
func joinUnlabelled(c *validate.Context, value interface{}) interface{} {
	items, ok := value.([]interface{})
	if !ok {
		return value
	}

	var out []interface{}
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		values, ok := m["value"].([]interface{})
		if !ok || !missingLanguage(values) {
			continue
		}

		var parts []string
		for _, v := range values {
			switch pv := v.(type) {
			case string:
				parts = append(parts, pv)
			case map[string]interface{}:
				if s, ok := pv["@value"].(string); ok {
					parts = append(parts, s)
				}
			}
		}

		if out == nil {
			out = append([]interface{}(nil), items...)
		}
		m = validate.CopyMap(m)
		m["value"] = strings.Join(parts, "; ")
		out[i] = m
		c.At(i).WarnAt("value", validate.CodeLibrary, "Applied library specific corrections. Joined metadata values without a language.")
	}

	if out == nil {
		return value
	}
	return out
}

func missingLanguage(values []interface{}) bool {
	for _, v := range values {
		if m, ok := v.(map[string]interface{}); ok {
			if lang, ok := m["@language"]; !ok || lang == "" {
				return true
			}
		}
	}
	return false
}
