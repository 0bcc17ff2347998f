package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"
)

var overridesCmd = cli.Command{
	Name:  "overrides",
	Usage: "List library specific override bundles",
	Description: `Lists every override bundle, the hosts that select it, and what it
	tolerates.  Aliases and disabled bundles from the configuration file are
	taken into account.`,
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		registry, err := newRegistry(cfg)
		if err != nil {
			return err
		}

		for _, b := range registry.Bundles() {
			fmt.Printf("%s    %s\n        %s\n", b.Name, strings.Join(registry.Hosts(b.Name), ", "), b.Doc)
		}
		return nil
	},
}
