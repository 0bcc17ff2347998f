// Package metadata contains facilities for working with IIIF Presentation 2.0
// documents as decoded JSON trees.
//
// Documents are kept in their generic decoded form (maps, slices and scalars)
// rather than bound to structs, since real-world manifests carry arbitrary extra
// keys and vendor quirks that must survive validation untouched.  Numbers are
// decoded as json.Number so that integer dimensions round-trip exactly.
//
// The lang-value helpers mirror how IIIF documents express human readable text:
// either a plain string, a {"@value", "@language"} pair, or a list of either.
package metadata
