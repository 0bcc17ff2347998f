package overrides

import (
	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
	"github.com/birkland/iiif/validate"
)

// Harvard tolerates the deviations of manifests served by Harvard Library.
func Harvard() validate.Bundle {
	fields := []validate.FieldPatch{{
		Node:  iiif.Manifest,
		Field: "@context",
		Patch: func(next validate.FieldFunc) validate.FieldFunc {
			return func(c *validate.Context, value interface{}) (interface{}, error) {
				checked, err := next(c, value)
				if err != nil {
					c.Warn(validate.CodeLibrary, "Applied library specific corrections. Unknown context.")
					return value, nil
				}
				return checked, nil
			}
		},
	}, {
		Node:  iiif.ImageResource,
		Field: "service",
		Patch: func(next validate.FieldFunc) validate.FieldFunc {
			return func(c *validate.Context, value interface{}) (interface{}, error) {
				switch v := value.(type) {
				case map[string]interface{}:
					return next(c, withImageContext(c, v))
				case []interface{}:
					services := make([]interface{}, len(v))
					for i, item := range v {
						services[i] = item
						if m, ok := item.(map[string]interface{}); ok {
							services[i] = withImageContext(c.At(i), m)
						}
					}
					return next(c, services)
				}
				return next(c, value)
			}
		},
	}}

	return validate.Bundle{
		Name:   "harvard",
		Hosts:  []string{"harvard.edu"},
		Doc:    "unknown manifest @context tolerated; image services without @context get the Image API 1.1 context; 'dcterms:Image' corrected",
		Fields: append(fields, imageTypePatches()...),
	}
}

// withImageContext gives a service description without an @context the Image
// API 1.1 context.
func withImageContext(c *validate.Context, m map[string]interface{}) map[string]interface{} {
	if ctx, ok := m["@context"]; ok && ctx != "" && ctx != nil {
		return m
	}
	m = validate.CopyMap(m)
	m["@context"] = metadata.ImageAPI1Context
	corrected(c, "@context", "Added @context to images.")
	return m
}
