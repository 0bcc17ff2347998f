package overrides

import "github.com/birkland/iiif/validate"

// Stanford corrects the image type used by Stanford's manifests.
func Stanford() validate.Bundle {
	return validate.Bundle{
		Name:   "stanford",
		Hosts:  []string{"stanford.edu"},
		Doc:    "'dcterms:Image' corrected to 'dctypes:Image'",
		Fields: imageTypePatches(),
	}
}

// WDL corrects the image type used by the World Digital Library.
func WDL() validate.Bundle {
	return validate.Bundle{
		Name:   "wdl",
		Hosts:  []string{"wdl.org"},
		Doc:    "'dcterms:Image' corrected to 'dctypes:Image'",
		Fields: imageTypePatches(),
	}
}
