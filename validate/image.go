package validate

import (
	"strings"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
)

func annotationSchema() Schema {
	return Schema{
		Key("@id", HTTPURI),
		Required("@type", Literal(metadata.AnnotationType)),
		Required("motivation", Literal(metadata.Painting)),
		Required("resource", ImageResourceField),
		Key("on", On),
	}
}

func imageResourceSchema() Schema {
	return Schema{
		Required("@id", HTTPURI),
		Key("@type", ResourceType),
		Key("service", Services),
	}
}

func serviceSchema() Schema {
	return Schema{
		Key("@context", RepeatableString),
		Key("@id", URI),
		Key("profile", Profile),
		Key("label", String),
	}
}

// On checks the target of an image annotation against the canvas enclosing it,
// as selected by the validator's OnCheck policy.  Fragments (such as xywh
// selectors) are ignored when comparing.
func On(c *Context, value interface{}) (interface{}, error) {
	if _, err := URI(c, value); err != nil {
		return value, err
	}

	canvas := c.CanvasID()
	if canvas == "" {
		return value, nil
	}

	same := stripFragment(URIOf(value)) == stripFragment(canvas)
	switch c.v.onCheck {
	case OnMustEqualCanvas:
		if !same {
			return value, Fail(CodeCanvasRef, "'on' must reference the canvas URI.")
		}
	case OnMustDifferFromCanvas:
		if same {
			return value, Fail(CodeCanvasRef, "'on' must reference the canvas URI.")
		}
	}

	return value, nil
}

func stripFragment(uri string) string {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i]
	}
	return uri
}

// ImageResourceField checks the resource painted by an image annotation.  A
// choice of images is replaced by its default image.
func ImageResourceField(c *Context, value interface{}) (interface{}, error) {
	m, ok := value.(map[string]interface{})
	if !ok {
		return value, Fail(CodeUnknownResource, "Image resource has unknown type: %s", describe(value))
	}

	switch m["@type"] {
	case metadata.ImageType:
		return c.Check(iiif.ImageResource, m)
	case metadata.ChoiceType:
		def, ok := m["default"]
		if !ok {
			return value, Fail(CodeRequired, "required key 'default' not provided")
		}
		corrected, err := c.At("default").Check(iiif.ImageResource, def)
		if err != nil {
			return corrected, failuresOf(err, "default").err()
		}
		// The default takes the place of the choice, typed as an image.
		if img, ok := corrected.(map[string]interface{}); ok && img["@type"] != metadata.ImageType {
			img = CopyMap(img)
			img["@type"] = metadata.ImageType
			c.WarnAt("@type", CodeImageType, "Set '@type' of the default image to dctypes:Image.")
			corrected = img
		}
		return corrected, nil
	}

	return value, Fail(CodeUnknownResource, "Image resource has unknown type: %s", describe(m["@type"]))
}

// ResourceType warns about image resources that are not typed as images.
func ResourceType(c *Context, value interface{}) (interface{}, error) {
	if value != metadata.ImageType {
		c.Warn(CodeImageType, "'@type' field SHOULD be dctypes:Image")
	}
	return value, nil
}

// Profile accepts a profile URI, or a list holding a profile URI followed by
// profile descriptions.
func Profile(c *Context, value interface{}) (interface{}, error) {
	list, ok := value.([]interface{})
	if !ok {
		return URI(c, value)
	}
	if len(list) == 0 {
		return value, Fail(CodeInvalidURI, "profile list must start with a URI")
	}
	if _, err := URI(c.At(0), list[0]); err != nil {
		return value, failuresOf(err, 0).err()
	}
	return value, nil
}
