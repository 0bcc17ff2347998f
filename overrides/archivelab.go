package overrides

import (
	"github.com/birkland/iiif"
	"github.com/birkland/iiif/validate"
)

// Archivelab accepts the 'type' key the Internet Archive uses in place of
// '@type' on image annotations, renaming it in the corrected document.
func Archivelab() validate.Bundle {
	return validate.Bundle{
		Name:  "archivelab",
		Hosts: []string{"archivelab.org"},
		Doc:   "annotation 'type' renamed to '@type'",
		Corrections: []validate.Correction{{
			Node: iiif.Annotation,
			Fix: func(c *validate.Context, value interface{}) (interface{}, error) {
				m, ok := value.(map[string]interface{})
				if !ok {
					return value, nil
				}
				t, hasType := m["type"]
				if _, hasAtType := m["@type"]; !hasType || hasAtType {
					return value, nil
				}

				m = validate.CopyMap(m)
				m["@type"] = t
				delete(m, "type")
				corrected(c, "@type", "Replaced 'type' with '@type'.")
				return m, nil
			},
		}},
	}
}
