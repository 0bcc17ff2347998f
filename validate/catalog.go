package validate

// Code classifies a diagnostic, independent of its message text.
type Code string

// Diagnostic codes
const (
	CodeRequired        Code = "required"
	CodeNotAllowed      Code = "not-allowed"
	CodeInvalidValue    Code = "invalid-value"
	CodeInvalidType     Code = "invalid-type"
	CodeInvalidURI      Code = "invalid-uri"
	CodeContext         Code = "context"
	CodeCanvasRef       Code = "canvas-ref"
	CodeUnknownResource Code = "unknown-resource"
	CodeEmptyField      Code = "empty-field"
	CodeCoerced         Code = "coerced"
	CodeImageType       Code = "image-type"
	CodeThumbnail       Code = "thumbnail"
	CodeLibrary         Code = "library-correction"
	CodeInternal        Code = "internal"
	CodeUnreadable      Code = "unreadable"
)

// Entry describes one diagnostic code.
type Entry struct {
	Code  Code
	Kind  Kind
	Short string
	Long  string
}

// Catalog is a read-only table of diagnostic codes.  Build one with NewCatalog
// and share it; it is never modified after construction.
type Catalog struct {
	entries map[Code]Entry
	order   []Code
}

// NewCatalog builds the table of every code the validator and the built-in
// override bundles can emit.
func NewCatalog() *Catalog {
	entries := []Entry{
		{CodeRequired, Error, "Missing required key",
			"A key required by the Presentation API is absent."},
		{CodeNotAllowed, Error, "Key not allowed",
			"A key appears where the Presentation API forbids it, e.g. 'canvases' in a linked sequence."},
		{CodeInvalidValue, Error, "Invalid value",
			"A value is outside the set the Presentation API allows, e.g. the wrong @type."},
		{CodeInvalidType, Error, "Invalid type",
			"A value has the wrong JSON type, e.g. a string where a list is required."},
		{CodeInvalidURI, Error, "Invalid URI",
			"A value that must be a URI could not be parsed as one, or is not http(s) where required."},
		{CodeContext, Error, "Unknown @context",
			"The manifest @context does not reference the Presentation API 2 context."},
		{CodeCanvasRef, Error, "Annotation target mismatch",
			"An image annotation's 'on' does not reference the canvas it is painted on."},
		{CodeUnknownResource, Error, "Unknown image resource type",
			"An image annotation's resource is neither dctypes:Image nor oa:Choice."},
		{CodeEmptyField, Warning, "Empty field",
			"An optional field is present but empty; it should be omitted."},
		{CodeCoerced, Warning, "Coerced value",
			"A numeric string was replaced with an integer."},
		{CodeImageType, Warning, "Unexpected image @type",
			"An image resource's @type is not dctypes:Image."},
		{CodeThumbnail, Warning, "Plain thumbnail",
			"A thumbnail is a bare URI rather than an image service."},
		{CodeLibrary, Warning, "Library specific correction",
			"A correction for a known deviation of the document's source library was applied."},
		{CodeInternal, Error, "Validation aborted",
			"The validator failed unexpectedly while checking this document."},
		{CodeUnreadable, Error, "Unreadable document",
			"The document could not be read or decoded as a JSON object."},
	}

	c := &Catalog{entries: make(map[Code]Entry, len(entries))}
	for _, e := range entries {
		c.entries[e.Code] = e
		c.order = append(c.order, e.Code)
	}
	return c
}

// Lookup finds the entry for a code.
func (c *Catalog) Lookup(code Code) (Entry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

// Entries lists every entry, in a stable order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.entries[code])
	}
	return out
}
