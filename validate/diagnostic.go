package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes fatal diagnostics from recoverable ones.
type Kind int

// Diagnostic kinds
const (
	Error Kind = iota
	Warning
)

func (k Kind) String() string {
	if k == Warning {
		return "Warning"
	}
	return "Error"
}

// Path locates a value within a document, as a sequence of map keys (strings)
// and list indices (ints).
type Path []interface{}

// Join returns a new path with the given segments appended.  The receiver is
// never modified.
func (p Path) Join(segs ...interface{}) Path {
	joined := make(Path, 0, len(p)+len(segs))
	joined = append(joined, p...)
	return append(joined, segs...)
}

// String renders the path as accessors, e.g. ['sequences'][0]['canvases']
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		switch s := seg.(type) {
		case string:
			fmt.Fprintf(&b, "['%s']", s)
		default:
			fmt.Fprintf(&b, "[%v]", s)
		}
	}
	return b.String()
}

// Diagnostic is a single error or warning, located by its path from the
// document root.
type Diagnostic struct {
	Kind    Kind
	Code    Code
	Message string
	Path    Path
}

func (d Diagnostic) String() string {
	s := d.Kind.String() + ": " + d.Message
	if len(d.Path) > 0 {
		s += " @ data" + d.Path.String()
	}
	return s
}

func (d Diagnostic) Error() string {
	return d.String()
}

// Outcome is the result of validating one document.
type Outcome struct {
	Valid     bool
	Errors    []Diagnostic
	Warnings  []Diagnostic
	Corrected interface{} // The corrected document tree
}

// Diagnostics returns errors and warnings together, ordered by path length.
func (o Outcome) Diagnostics() []Diagnostic {
	all := make([]Diagnostic, 0, len(o.Errors)+len(o.Warnings))
	all = append(all, o.Errors...)
	all = append(all, o.Warnings...)
	sortDiagnostics(all)
	return all
}

// Strings renders every diagnostic, errors first.
func (o Outcome) Strings() []string {
	var out []string
	for _, d := range o.Errors {
		out = append(out, d.String())
	}
	for _, d := range o.Warnings {
		out = append(out, d.String())
	}
	return out
}

// Shorter paths sort first, so that root level problems surface before the
// problems of nested nodes.  Order of equal length paths is preserved.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return len(diags[i].Path) < len(diags[j].Path)
	})
}

// accumulator collects diagnostics, dropping duplicates.  Two diagnostics are
// the same if they render to the same text.
type accumulator struct {
	seen  map[string]struct{}
	diags []Diagnostic
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]struct{})}
}

func (a *accumulator) add(d Diagnostic) {
	key := d.String()
	if _, dup := a.seen[key]; dup {
		return
	}
	a.seen[key] = struct{}{}
	a.diags = append(a.diags, d)
}

func (a *accumulator) merge(other *accumulator) {
	for _, d := range other.diags {
		a.add(d)
	}
}

func (a *accumulator) split() (errs, warns []Diagnostic) {
	for _, d := range a.diags {
		if d.Kind == Warning {
			warns = append(warns, d)
		} else {
			errs = append(errs, d)
		}
	}
	sortDiagnostics(errs)
	sortDiagnostics(warns)
	return errs, warns
}
