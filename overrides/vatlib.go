package overrides

import (
	"github.com/birkland/iiif"
	"github.com/birkland/iiif/validate"
)

// Vatlib tolerates the manifests of the Vatican Library, whose image
// annotations do not reliably target the canvas they are painted on.
func Vatlib() validate.Bundle {
	return validate.Bundle{
		Name:  "vatlib",
		Hosts: []string{"vatlib.it"},
		Doc:   "annotation 'on' only checked as an http URI; missing 'on' tolerated",
		Fields: []validate.FieldPatch{{
			Node:  iiif.Annotation,
			Field: "on",
			Patch: func(validate.FieldFunc) validate.FieldFunc {
				return validate.HTTPURI
			},
		}},
		Corrections: []validate.Correction{{
			Node: iiif.Annotation,
			Fix: func(c *validate.Context, value interface{}) (interface{}, error) {
				if m, ok := value.(map[string]interface{}); ok {
					if on, ok := m["on"]; !ok || on == "" || on == nil {
						corrected(c, "on", "Key requirement ignored.")
					}
				}
				return value, nil
			},
		}},
	}
}
