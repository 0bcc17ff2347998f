package main

import (
	"fmt"
	"strings"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
	"github.com/urfave/cli"
)

var lsOpts = struct {
	lang string
	meta cli.StringSlice
}{}

var ls = cli.Command{
	Name:  "ls",
	Usage: "List manifests",
	Description: `Given manifest files or directories, list the manifests found.

	For each manifest, prints its location, its @id, the override bundle its
	host selects (or '-'), and its label in the preferred language.  Each --meta
	adds a column with the value of the metadata entry of that label:

	  iiifv ls --lang fr --meta Author --meta Date ./dumps`,
	ArgsUsage: "[ file | dir ] ...",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "lang, l",
			Usage:       "Preferred label language",
			Value:       "en",
			Destination: &lsOpts.lang,
		},
		cli.StringSliceFlag{
			Name:  "meta, m",
			Usage: "Add a column for the metadata entry with this label (repeatable)",
			Value: &lsOpts.meta,
		},
	},

	Action: func(c *cli.Context) error {
		return lsAction(c.Args())
	},
}

func lsAction(args []string) error {
	cfg, err := loadConfig()
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

	return d.Walk(func(ref iiif.DocumentRef) error {
		doc, err := d.Read(ref)
		if err != nil {
			log.Warn().Err(err).Str("file", ref.Addr).Msg("skipping unreadable manifest")
			return nil
		}

		bundle := "-"
		if b, ok := registry.Lookup(metadata.Hostname(doc)); ok {
			bundle = b.Name
		}

		fmt.Println(listing(ref, doc, bundle, lsOpts.lang, lsOpts.meta.Value()))
		return nil
	}, args...)
}

// listing formats one line of 'ls' output.
func listing(ref iiif.DocumentRef, doc metadata.Document, bundle, lang string, meta []string) string {
	cols := []string{
		ref.Addr,
		metadata.ID(doc),
		bundle,
		metadata.LangValue(doc["label"], lang),
	}
	for _, key := range meta {
		value := metadata.LangValue(metadata.MetadataValue(doc["metadata"], key), lang)
		if value == "" {
			value = "-"
		}
		cols = append(cols, value)
	}
	return strings.Join(cols, "    ")
}
