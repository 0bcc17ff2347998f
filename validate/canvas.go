package validate

import (
	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
)

func canvasSchema() Schema {
	return Schema{
		Required("@id", HTTPURI),
		Required("@type", Literal(metadata.CanvasType)),
		Required("label", StrOrLangValue),
		Required("height", IntOrNumericString),
		Required("width", IntOrNumericString),
		Key("images", Images),
		Key("other_content", OtherContent),
	}
}

// canvas validates a canvas, making its @id available to the annotations
// painted on it.
func (v *Validator) canvas(c *Context, value interface{}) (interface{}, error) {
	var id string
	if m, ok := value.(map[string]interface{}); ok {
		id = URIOf(m["@id"])
	}
	return v.apply(c.WithCanvas(id), iiif.Canvas, value)
}

// Images validates each image annotation of a canvas.  A canvas may have no
// images at all.
func Images(c *Context, value interface{}) (interface{}, error) {
	if list, ok := value.([]interface{}); ok {
		out := make([]interface{}, len(list))
		for i, anno := range list {
			out[i] = c.Sub(iiif.Annotation, anno, i)
		}
		return out, nil
	}

	if falsy(value) {
		return value, nil
	}

	return value, Fail(CodeInvalidType, "'images' must be a list")
}

// OtherContent accepts a list of annotation list references.
func OtherContent(c *Context, value interface{}) (interface{}, error) {
	list, ok := value.([]interface{})
	if !ok {
		return value, Fail(CodeInvalidType, "'other_content' must be a list")
	}
	return Each(c, list, URI)
}
