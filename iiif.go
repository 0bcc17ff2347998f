package iiif

import (
	"strings"

	"github.com/birkland/iiif/metadata"
)

// Type names a kind of node within a IIIF Presentation document.
type Type int

// Node kinds, ordered from the document root down to its leaves.
const (
	Any Type = iota
	Manifest
	Sequence
	LinkedSequence
	Canvas
	Annotation
	ImageResource
	Service
	MetadataItem
	LangValue
)

var typeNames = map[Type]string{
	Any:            "any",
	Manifest:       "manifest",
	Sequence:       "sequence",
	LinkedSequence: "linkedSequence",
	Canvas:         "canvas",
	Annotation:     "annotation",
	ImageResource:  "imageResource",
	Service:        "service",
	MetadataItem:   "metadataItem",
	LangValue:      "langValue",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType parses a node kind name, ignoring case.  Unrecognized
// names parse as Any.
func ParseType(name string) Type {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t
		}
	}
	return Any
}

// DocumentRef locates a single manifest document.
type DocumentRef struct {
	ID   string // The document's own @id, when known
	Addr string // Physical address (file path or URI) of the document
}

// Driver provides access to stored manifest documents.
type Driver interface {

	// Walk invokes the callback for every document found at or beneath the given
	// locations.  Any error returned by the callback terminates the walk.
	Walk(f func(DocumentRef) error, locs ...string) error

	// Read decodes the document at the given reference.
	Read(ref DocumentRef) (metadata.Document, error)
}
