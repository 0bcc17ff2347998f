// Package overrides selects library specific validation for manifests.
//
// Many institutions publish manifests with systematic, harmless deviations from
// the Presentation API: a misspelled image type, a missing service context, a
// 'type' where '@type' belongs.  Each such institution gets a validate.Bundle
// that corrects exactly those deviations, leaving every other check at its
// default.  A Registry maps hostnames to bundles; the bundle for a document is
// found from the host of the document's own @id, trying the host itself and
// then each parent domain, so that a bundle registered for harvard.edu applies
// to iiif.lib.harvard.edu.
//
// The built-in bundles are collected by Default.  Each checks that the deviation
// it corrects is actually present before correcting it, so a library that fixes
// its manifests does not get spurious corrections.
package overrides
