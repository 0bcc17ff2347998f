package metadata

import (
	"io"

	"github.com/birkland/iiif/internal/resolv"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Well known values used by Presentation 2.0 documents
const (
	PresentationContext = "http://iiif.io/api/presentation/2/context.json"
	ImageAPI1Context    = "http://library.stanford.edu/iiif/image-api/1.1/context.json"
	ImageAPI2Context    = "http://iiif.io/api/image/2/context.json"

	ManifestType   = "sc:Manifest"
	SequenceType   = "sc:Sequence"
	CanvasType     = "sc:Canvas"
	AnnotationType = "oa:Annotation"
	ImageType      = "dctypes:Image"
	ChoiceType     = "oa:Choice"
	Painting       = "sc:painting"
)

// Document is a decoded JSON object.
type Document = map[string]interface{}

var json = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// Parse decodes a byte stream into a document
func Parse(r io.Reader, d *Document) error {
	err := json.NewDecoder(r).Decode(d)
	if err != nil {
		return errors.Wrap(err, "could not decode json document")
	}
	if *d == nil {
		return errors.New("document is not a json object")
	}
	return nil
}

// Serialize writes a decoded tree as json
func Serialize(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "could not encode json document")
}

// ID returns the document's own @id, or an empty string if it has none.
func ID(d Document) string {
	if id, ok := d["@id"].(string); ok {
		return id
	}
	return ""
}

// Hostname returns the normalized host of the document's @id.
func Hostname(d Document) string {
	return resolv.Hostname(ID(d))
}
