package overrides

import (
	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
	"github.com/birkland/iiif/validate"
)

const dctermsImage = "dcterms:Image"

func corrected(c *validate.Context, field, msg string) {
	c.WarnAt(field, validate.CodeLibrary, "Applied library specific corrections. "+msg)
}

// imageTypePatches accept 'dcterms:Image' as a misspelling of 'dctypes:Image',
// both where an annotation's resource is dispatched on its type and where an
// image resource's own type is checked.
func imageTypePatches() []validate.FieldPatch {
	return []validate.FieldPatch{{
		Node:  iiif.Annotation,
		Field: "resource",
		Patch: func(next validate.FieldFunc) validate.FieldFunc {
			return func(c *validate.Context, value interface{}) (interface{}, error) {
				if m, ok := value.(map[string]interface{}); ok && m["@type"] == dctermsImage {
					m = validate.CopyMap(m)
					m["@type"] = metadata.ImageType
					corrected(c, "@type", "Replaced 'dcterms:Image' with 'dctypes:Image'.")
					return next(c, m)
				}
				return next(c, value)
			}
		},
	}, {
		Node:  iiif.ImageResource,
		Field: "@type",
		Patch: func(next validate.FieldFunc) validate.FieldFunc {
			return func(c *validate.Context, value interface{}) (interface{}, error) {
				if value == dctermsImage {
					c.Warn(validate.CodeLibrary, "Applied library specific corrections. Replaced 'dcterms:Image' with 'dctypes:Image'.")
					return next(c, metadata.ImageType)
				}
				return next(c, value)
			}
		},
	}}
}
