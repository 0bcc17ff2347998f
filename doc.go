// Package iiif defines the node kinds and document access API shared by the
// IIIF Presentation 2.0 manifest validator.
//
// Validation itself lives in the validate package; per-library deviations are
// tolerated by bundles from the overrides package.  Access to manifest documents
// on disk is provided by Driver implementations under drivers/.
package iiif
