package validate

import (
	"fmt"
	"strings"

	"github.com/birkland/iiif"
)

// Failure rejects a value.  Its path is relative to the field being checked.
type Failure struct {
	Code    Code
	Message string
	Path    Path
}

// Fail creates a failure at the field being checked.
func Fail(code Code, format string, args ...interface{}) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (f *Failure) Error() string {
	return f.Message
}

// At returns a copy of the failure, located under the given segments.
func (f *Failure) At(segs ...interface{}) *Failure {
	return &Failure{Code: f.Code, Message: f.Message, Path: Path(segs).Join(f.Path...)}
}

// Failures is a set of rejections, as returned by checks of compound values.
type Failures []*Failure

func (fs Failures) Error() string {
	msgs := make([]string, len(fs))
	for i, f := range fs {
		msgs[i] = f.Message
		if len(f.Path) > 0 {
			msgs[i] += " @ " + f.Path.String()
		}
	}
	return strings.Join(msgs, "; ")
}

// err returns the failures as an error, or nil if there are none.
func (fs Failures) err() error {
	if len(fs) == 0 {
		return nil
	}
	return fs
}

// failuresOf flattens any error returned by a FieldFunc into failures located
// under the given segments.
func failuresOf(err error, segs ...interface{}) Failures {
	switch e := err.(type) {
	case nil:
		return nil
	case *Failure:
		return Failures{e.At(segs...)}
	case Failures:
		out := make(Failures, len(e))
		for i, f := range e {
			out[i] = f.At(segs...)
		}
		return out
	case Diagnostic:
		return Failures{&Failure{Code: e.Code, Message: e.Message, Path: Path(segs).Join(e.Path...)}}
	default:
		return Failures{&Failure{Code: CodeInvalidValue, Message: err.Error(), Path: Path(segs)}}
	}
}

// Context carries the state of one validation call: where in the document the
// current value lives, the diagnostics accumulated so far, and data threaded down
// from enclosing nodes.  A Context is never shared between validation calls.
type Context struct {
	v        *Validator
	path     Path
	acc      *accumulator
	canvasID string
}

// Path returns the location of the value being checked.
func (c *Context) Path() Path {
	return c.path.Join()
}

// Field returns the name of the innermost map key in the current path.
func (c *Context) Field() string {
	for i := len(c.path) - 1; i >= 0; i-- {
		if s, ok := c.path[i].(string); ok {
			return s
		}
	}
	return ""
}

// At returns a context for a value nested under the current one.  Diagnostics
// recorded through it land in the same accumulator.
func (c *Context) At(segs ...interface{}) *Context {
	return &Context{
		v:        c.v,
		path:     c.path.Join(segs...),
		acc:      c.acc,
		canvasID: c.canvasID,
	}
}

// CanvasID is the @id of the canvas enclosing the current value, if any.
func (c *Context) CanvasID() string {
	return c.canvasID
}

// WithCanvas returns a context for the contents of the canvas with the given id.
func (c *Context) WithCanvas(id string) *Context {
	nc := c.At()
	nc.canvasID = id
	return nc
}

// Warn records a warning at the current path, unless warnings are suppressed.
func (c *Context) Warn(code Code, msg string) {
	if !c.v.raiseWarnings {
		return
	}
	c.acc.add(Diagnostic{Kind: Warning, Code: code, Message: msg, Path: c.Path()})
}

// WarnAt records a warning on a field of the current value.
func (c *Context) WarnAt(field string, code Code, msg string) {
	c.At(field).Warn(code, msg)
}

// Check runs the validator's checks for the given node kind against value and
// returns the corrected value.  Rejections are returned as failures relative to
// the current path, for the caller to report or recover from.
func (c *Context) Check(node iiif.Type, value interface{}) (interface{}, error) {
	return c.v.check(c, node, value)
}

// Sub delegates a subtree to the validator for the given node kind.  The subtree
// is validated with its own accumulator, located at the current path extended
// by segs; its diagnostics are then merged into this context and its corrected
// value returned for splicing into the parent.
func (c *Context) Sub(node iiif.Type, value interface{}, segs ...interface{}) interface{} {
	child := &Context{
		v:        c.v,
		path:     c.path.Join(segs...),
		acc:      newAccumulator(),
		canvasID: c.canvasID,
	}

	corrected, err := c.v.check(child, node, value)
	child.report(err)
	c.acc.merge(child.acc)

	return corrected
}

// report records failures as errors.
func (c *Context) report(err error) {
	for _, f := range failuresOf(err) {
		c.acc.add(Diagnostic{Kind: Error, Code: f.Code, Message: f.Message, Path: c.path.Join(f.Path...)})
	}
}

func (c *Context) outcome(corrected interface{}) Outcome {
	errs, warns := c.acc.split()
	valid := len(errs) == 0
	if c.v.warningsAsErrors && len(warns) > 0 {
		valid = false
	}

	return Outcome{
		Valid:     valid,
		Errors:    errs,
		Warnings:  warns,
		Corrected: corrected,
	}
}
