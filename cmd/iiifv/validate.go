package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/drivers/fs"
	"github.com/birkland/iiif/metadata"
	"github.com/birkland/iiif/overrides"
	"github.com/birkland/iiif/validate"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

var validateOpts = struct {
	json       bool
	out        string
	codes      cli.StringSlice
	jobs       int
	quiet      bool
	noWarnings bool
	strict     bool
	on         string
	node       string
}{}

var validateCmd = cli.Command{
	Name:  "validate",
	Usage: "Validate IIIF manifests",
	Description: `Given a list of manifest files or directories, validate every manifest found.

	Directories are searched recursively for files named *.json, *.json.gz or
	*.json.zst.  Each manifest is validated with the library specific corrections
	selected by the host of its @id (see 'iiifv overrides'), and a report is
	printed for each one:

		iiifv validate -j 20 ./dumps

	With -o, the corrected form of every valid manifest is written to the given
	directory, one sub directory per host.  With --code, only reports that
	include a diagnostic with one of the given codes are printed (see
	'iiifv codes'), e.g. to find every manifest whose images target the wrong
	canvas:

		iiifv validate --code canvas-ref ./dumps

	With --node, each document is validated as a standalone node of the given
	kind rather than as a manifest, e.g. canvases dumped one per file:

		iiifv validate --node canvas ./canvases

	The exit status is non-zero if any manifest is invalid.
	`,
	ArgsUsage: "[ file | dir ] ...",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "json",
			Usage:       "Print reports as JSON, one per line",
			Destination: &validateOpts.json,
		},
		cli.StringFlag{
			Name:        "out, o",
			Usage:       "Write corrected manifests into this directory",
			Destination: &validateOpts.out,
		},
		cli.StringSliceFlag{
			Name:  "code",
			Usage: "Only report manifests with a diagnostic of this code (repeatable)",
			Value: &validateOpts.codes,
		},
		cli.IntFlag{
			Name:        "jobs, j",
			Usage:       "Number of manifests to validate concurrently",
			Destination: &validateOpts.jobs,
		},
		cli.BoolFlag{
			Name:        "quiet, q",
			Usage:       "Only report invalid manifests",
			Destination: &validateOpts.quiet,
		},
		cli.BoolFlag{
			Name:        "no-warnings",
			Usage:       "Do not report warnings (corrections are still applied)",
			Destination: &validateOpts.noWarnings,
		},
		cli.BoolFlag{
			Name:        "strict",
			Usage:       "Treat warnings as errors",
			Destination: &validateOpts.strict,
		},
		cli.StringFlag{
			Name:        "on",
			Usage:       "Annotation target check {equal, differ, off}",
			Destination: &validateOpts.on,
		},
		cli.StringFlag{
			Name:        "node",
			Usage:       "Validate documents as {manifest, canvas, annotation, imageResource, linkedSequence, service}",
			Value:       "manifest",
			Destination: &validateOpts.node,
		},
	},

	Action: func(c *cli.Context) error {
		return validateAction(c.Args())
	},
}

// report describes the validation of one manifest.
type report struct {
	ID          string          `json:"id"`
	Location    string          `json:"location"`
	Source      string          `json:"source,omitempty"`
	Label       string          `json:"label,omitempty"`
	Bundle      string          `json:"bundle,omitempty"`
	Valid       bool            `json:"valid"`
	Errors      []string        `json:"errors,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
	Codes       []validate.Code `json:"codes,omitempty"`
	Output      string          `json:"output,omitempty"`
	OutputError string          `json:"outputError,omitempty"`
}

func (r report) matches(codes []string) bool {
	if len(codes) == 0 {
		return true
	}
	for _, have := range r.Codes {
		for _, want := range codes {
			if string(have) == want {
				return true
			}
		}
	}
	return false
}

func validateAction(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if validateOpts.jobs > 0 {
		cfg.Concurrency = validateOpts.jobs
	}
	if validateOpts.noWarnings {
		cfg.RaiseWarnings = false
	}
	if validateOpts.strict {
		cfg.WarningsAsErrors = true
	}
	if validateOpts.on != "" {
		cfg.OnCheck = validateOpts.on
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	node, err := parseNode(validateOpts.node)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	d, err := newDriver(log)
	if err != nil {
		return err
	}

	registry, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	r := &runner{
		driver: d,
		set:    registry.Build(opts...),
		node:   node,
		log:    log,
	}

	if validateOpts.out != "" {
		r.session, err = d.Open(validateOpts.out)
		if err != nil {
			return errors.Wrapf(err, "could not open output directory")
		}
	}

	reports := make(chan report)
	done := make(chan struct{})
	var total, invalid int

	go func() {
		defer close(done)
		for rep := range reports {
			total++
			if !rep.Valid {
				invalid++
			}
			if validateOpts.quiet && rep.Valid {
				continue
			}
			if !rep.matches(validateOpts.codes.Value()) {
				continue
			}
			if err := printReport(os.Stdout, rep, validateOpts.json); err != nil {
				log.Error().Err(err).Msg("could not print report")
			}
		}
	}()

	err = r.run(cfg.Concurrency, args, reports)
	close(reports)
	<-done

	if err != nil {
		return err
	}

	log.Info().Int("total", total).Int("invalid", invalid).Int64("written", r.written).Msg("validation finished")

	if invalid > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d manifests invalid", invalid, total), 1)
	}
	return nil
}

// runner validates manifests concurrently.
type runner struct {
	driver  iiif.Driver
	set     *overrides.Set
	node    iiif.Type
	session fs.Session
	log     *zerolog.Logger
	written int64
}

// run validates every manifest found at the given locations with the given
// number of workers, sending one report per manifest.  Problems with individual
// manifests are reported, not returned; the error is for problems that stop the
// whole run, such as a location that cannot be walked.
func (r *runner) run(jobs int, locs []string, out chan<- report) error {
	q := make(chan iiif.DocumentRef, jobs)
	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < jobs; i++ {
		g.Go(func() error {
			for ref := range q {
				select {
				case out <- r.check(ref):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(q)
		return r.driver.Walk(func(ref iiif.DocumentRef) error {
			select {
			case q <- ref:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}, locs...)
	})

	return g.Wait()
}

func (r *runner) check(ref iiif.DocumentRef) report {
	rep := report{
		ID:       uuid.New().String(),
		Location: ref.Addr,
	}

	doc, err := r.driver.Read(ref)
	if err != nil {
		r.log.Warn().Err(err).Str("file", ref.Addr).Msg("could not read manifest")
		rep.Errors = []string{validate.Diagnostic{Kind: validate.Error, Code: validate.CodeUnreadable, Message: err.Error()}.String()}
		rep.Codes = []validate.Code{validate.CodeUnreadable}
		return rep
	}

	rep.Source = metadata.ID(doc)
	rep.Label = metadata.LangValue(doc["label"], "en")

	node := r.node
	if node == iiif.Any {
		node = iiif.Manifest
	}
	outcome, bundle := r.set.ValidateAt(node, doc)
	rep.Bundle = bundle
	rep.Valid = outcome.Valid
	rep.Codes = codesOf(outcome)
	for _, d := range outcome.Errors {
		rep.Errors = append(rep.Errors, d.String())
	}
	for _, d := range outcome.Warnings {
		rep.Warnings = append(rep.Warnings, d.String())
	}

	r.log.Debug().Str("file", ref.Addr).Str("bundle", bundle).Bool("valid", rep.Valid).Msg("validated manifest")

	if r.session != nil && outcome.Valid {
		path, err := r.session.Put(iiif.DocumentRef{ID: rep.Source, Addr: ref.Addr}, outcome.Corrected)
		if err != nil {
			r.log.Error().Err(err).Str("file", ref.Addr).Msg("could not write corrected manifest")
			rep.OutputError = err.Error()
		} else {
			rep.Output = path
			atomic.AddInt64(&r.written, 1)
		}
	}

	return rep
}

// parseNode names the kind of node documents are validated as.  The sequence
// kind names a manifest's list of sequences, which is never a document of its
// own.
func parseNode(name string) (iiif.Type, error) {
	node := iiif.ParseType(name)
	switch node {
	case iiif.Any:
		return node, errors.Errorf("unknown node kind '%s'", name)
	case iiif.Sequence:
		return node, errors.Errorf("cannot validate a standalone '%s', use '%s'", node, iiif.LinkedSequence)
	}
	return node, nil
}

func codesOf(o validate.Outcome) []validate.Code {
	var codes []validate.Code
	seen := make(map[validate.Code]bool)
	for _, d := range o.Diagnostics() {
		if !seen[d.Code] {
			seen[d.Code] = true
			codes = append(codes, d.Code)
		}
	}
	return codes
}

var reportJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

func printReport(w io.Writer, rep report, asJSON bool) error {
	if asJSON {
		return errors.Wrap(reportJSON.NewEncoder(w).Encode(rep), "could not encode report")
	}

	status := "valid"
	if !rep.Valid {
		status = "INVALID"
	}
	bundle := rep.Bundle
	if bundle == "" {
		bundle = "-"
	}

	if _, err := fmt.Fprintf(w, "%s    %s    %s    %s\n", status, bundle, rep.Location, rep.Source); err != nil {
		return err
	}
	for _, lines := range [][]string{rep.Errors, rep.Warnings} {
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "    %s\n", line); err != nil {
				return err
			}
		}
	}
	if rep.Output != "" {
		_, err := fmt.Fprintf(w, "    wrote %s\n", rep.Output)
		return err
	}
	return nil
}
