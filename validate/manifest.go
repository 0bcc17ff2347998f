package validate

import (
	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
)

var (
	viewingDirections = []string{"left-to-right", "right-to-left", "top-to-bottom", "bottom-to-top"}
	viewingHints      = []string{"individuals", "paged", "continuous"}
)

func defaultSchemas() map[iiif.Type]Schema {
	return map[iiif.Type]Schema{
		iiif.Manifest:       manifestSchema(),
		iiif.Sequence:       embeddedSequenceSchema(),
		iiif.LinkedSequence: linkedSequenceSchema(),
		iiif.Canvas:         canvasSchema(),
		iiif.Annotation:     annotationSchema(),
		iiif.ImageResource:  imageResourceSchema(),
		iiif.Service:        serviceSchema(),
		iiif.MetadataItem:   metadataItemSchema(),
		iiif.LangValue:      langValueSchema(),
	}
}

func manifestSchema() Schema {
	return Schema{
		// Descriptive
		Required("label", StrOrLangValue),
		Key("@context", PresentationContext),
		Key("metadata", Metadata),
		Key("description", StrOrLangValue),
		Key("thumbnail", Thumbnail),

		// Rights and licensing
		Key("attribution", Optional(StrOrLangValue)),
		Key("logo", Optional(RepeatableURI)),
		Key("license", Optional(RepeatableString)),

		// Technical
		Required("@id", HTTPURI),
		Required("@type", Literal(metadata.ManifestType)),
		Key("format", NotAllowed),
		Key("height", NotAllowed),
		Key("width", NotAllowed),
		Key("viewingDirection", OneOf(viewingDirections...)),
		Key("viewingHint", OneOf(viewingHints...)),

		// Linking
		Key("related", Optional(RepeatableURI)),
		Key("service", Optional(Services)),
		Key("seeAlso", Optional(RepeatableURI)),
		Key("within", Optional(RepeatableURI)),
		Key("startCanvas", NotAllowed),
		Required("sequences", Sequences),
	}
}

func metadataItemSchema() Schema {
	return Schema{
		Key("label", StrOrLangValue),
		Key("value", StrOrLangValue),
	}
}

func langValueSchema() Schema {
	return Schema{
		Required("@language", RepeatableString),
		Required("@value", RepeatableString),
	}
}

// PresentationContext checks a manifest @context, which must be the
// presentation API 2 context or a list containing it.
func PresentationContext(c *Context, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		if v == metadata.PresentationContext {
			return v, nil
		}
	case []interface{}:
		for _, ctx := range v {
			if ctx == metadata.PresentationContext {
				return v, nil
			}
		}
	}
	return value, Fail(CodeContext, "'@context' must be set to %s", metadata.PresentationContext)
}

// Metadata checks a list of label/value pairs.
func Metadata(c *Context, value interface{}) (interface{}, error) {
	list, ok := value.([]interface{})
	if !ok {
		return value, Fail(CodeInvalidType, "Metadata key MUST be a list.")
	}
	return Each(c, list, func(c *Context, item interface{}) (interface{}, error) {
		return c.Check(iiif.MetadataItem, item)
	})
}

// Thumbnail accepts an image resource, or the bare URI of an image (with a
// warning), or a list of those.
func Thumbnail(c *Context, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		c.Warn(CodeThumbnail, "Thumbnail SHOULD be IIIF image service.")
		return URI(c, v)
	case map[string]interface{}:
		return c.Check(iiif.ImageResource, v)
	case []interface{}:
		return Each(c, v, Thumbnail)
	}
	return value, Fail(CodeInvalidType, "thumbnail must be a URI or image resource, got %s", describe(value))
}

// Services accepts a service URI, a service description, or a list of those.
func Services(c *Context, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return URI(c, v)
	case map[string]interface{}:
		return c.Check(iiif.Service, v)
	case []interface{}:
		return Each(c, v, Services)
	}
	return value, Fail(CodeInvalidType, "service must be a URI or service description, got %s", describe(value))
}

// Sequences hands the manifest's sequence list to the sequence validator.
func Sequences(c *Context, value interface{}) (interface{}, error) {
	return c.Sub(iiif.Sequence, value), nil
}
