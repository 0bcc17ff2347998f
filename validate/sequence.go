package validate

import (
	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
)

func embeddedSequenceSchema() Schema {
	return Schema{
		Required("@type", Literal(metadata.SequenceType)),
		Key("@id", HTTPURI),
		Key("label", StrOrLangValue),
		Required("canvases", Canvases),
	}
}

// A linked sequence only points to where its canvases may be found.
func linkedSequenceSchema() Schema {
	return Schema{
		Required("@type", Literal(metadata.SequenceType)),
		Required("@id", HTTPURI),
		Key("canvases", NotAllowed),
	}
}

// sequences validates a manifest's list of sequences.  Only the first sequence
// may embed canvases, the others must be linked.
func (v *Validator) sequences(c *Context, value interface{}) (interface{}, error) {
	list, ok := value.([]interface{})
	if !ok {
		return value, Fail(CodeInvalidType, "'sequences' must be a list.")
	}
	if len(list) == 0 {
		return value, Fail(CodeRequired, "'sequences' must contain at least one sequence.")
	}

	out := make([]interface{}, len(list))
	var fails Failures
	for i, seq := range list {
		node := iiif.LinkedSequence
		if i == 0 {
			node = iiif.Sequence
		}

		corrected, err := v.apply(c.At(i), node, seq)
		fails = append(fails, failuresOf(err, i)...)
		out[i] = corrected
	}

	return out, fails.err()
}

// Canvases validates the canvases of an embedded sequence, each by the canvas
// validator.
func Canvases(c *Context, value interface{}) (interface{}, error) {
	list, ok := value.([]interface{})
	if !ok {
		return value, Fail(CodeInvalidType, "'canvases' must be a list")
	}
	if len(list) == 0 {
		return value, Fail(CodeRequired, "'canvases' must contain at least one canvas")
	}

	out := make([]interface{}, len(list))
	for i, canvas := range list {
		out[i] = c.Sub(iiif.Canvas, canvas, i)
	}
	return out, nil
}
