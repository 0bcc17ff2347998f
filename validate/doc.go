// Package validate checks IIIF Presentation 2.0 manifests for structural
// conformance, correcting the known classes of non-conformance that real-world
// manifests exhibit.
//
// A Validator holds immutable configuration: one Schema per node kind
// (manifest, sequence, canvas, image annotation, image resource, service, ...),
// each mapping field names to FieldFunc checkers.  Per-document state lives in
// a Context created afresh for every call to Validate, so a single Validator may
// be shared freely between goroutines.
//
// Diagnostics come in two kinds.  An Error marks a value that is structurally
// broken and cannot be corrected; the document is invalid.  A Warning records a
// deviation that was corrected (or tolerated); the document stays valid unless
// the validator was built with WarningsAsErrors.  Validation never stops at the
// first problem: every field of every node is checked, and every diagnostic is
// reported with its path from the document root, e.g.
//
//	Error: required key 'height' not provided @ data['sequences'][0]['canvases'][3]
//	Warning: Replaced string with int on height/width key. @ data['sequences'][0]['canvases'][0]['height']
//
// Vendor specific deviations are handled by Bundles (see the overrides package),
// which patch individual fields or whole schemas of a freshly built Validator
// while calling through to the default behaviour wherever it still applies.
package validate
