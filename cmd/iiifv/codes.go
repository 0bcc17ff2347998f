package main

import (
	"fmt"

	"github.com/birkland/iiif/validate"
	"github.com/urfave/cli"
)

var codesOpts = struct {
	long bool
}{}

var codes = cli.Command{
	Name:  "codes",
	Usage: "List diagnostic codes",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "long, l",
			Usage:       "Include a description of each code",
			Destination: &codesOpts.long,
		},
	},
	Action: func(c *cli.Context) error {
		for _, e := range validate.NewCatalog().Entries() {
			fmt.Printf("%-20s %-8s %s\n", e.Code, e.Kind, e.Short)
			if codesOpts.long {
				fmt.Printf("    %s\n", e.Long)
			}
		}
		return nil
	},
}
