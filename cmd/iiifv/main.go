package main

import (
	"log"
	"os"

	"github.com/birkland/iiif/drivers/fs"
	"github.com/birkland/iiif/fspath"
	"github.com/birkland/iiif/internal/config"
	"github.com/birkland/iiif/internal/logging"
	"github.com/birkland/iiif/overrides"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

var mainOpts = struct {
	root      string
	config    string
	logLevel  string
	logFormat string
	verbose   bool
}{}

func main() {
	app := cli.NewApp()
	app.Name = "iiifv"
	app.Usage = "IIIF Presentation 2.0 manifest validation utilities"
	app.EnableBashCompletion = true
	app.Commands = []cli.Command{
		validateCmd,
		ls,
		overridesCmd,
		codes,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "root, r",
			Usage:       "Base directory for relative manifest locations",
			EnvVar:      "IIIF_ROOT",
			Destination: &mainOpts.root,
		},
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "YAML configuration file",
			EnvVar:      "IIIF_CONFIG",
			Destination: &mainOpts.config,
		},
		cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level {debug, info, warn, error}",
			EnvVar:      "IIIF_LOG_LEVEL",
			Destination: &mainOpts.logLevel,
		},
		cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format {console, json}",
			EnvVar:      "IIIF_LOG_FORMAT",
			Destination: &mainOpts.logFormat,
		},
		cli.BoolFlag{
			Name:        "verbose, v",
			Usage:       "Log debug messages",
			Destination: &mainOpts.verbose,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the configuration file, if any, and applies the global
// flags over it.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if mainOpts.config != "" {
		var err error
		cfg, err = config.Load(mainOpts.config)
		if err != nil {
			return cfg, err
		}
	}

	if mainOpts.logLevel != "" {
		cfg.Log.Level = mainOpts.logLevel
	}
	if mainOpts.logFormat != "" {
		cfg.Log.Format = mainOpts.logFormat
	}

	return cfg, nil
}

func newLogger(cfg config.Config) (*zerolog.Logger, error) {
	return logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: mainOpts.verbose,
	})
}

func newDriver(log *zerolog.Logger) (*fs.Driver, error) {
	d, err := fs.NewDriver(fs.Config{
		Root:       mainOpts.root,
		OutputPath: fspath.ByHost,
		Logger:     logging.WithComponent(log, "fs"),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not initialize file driver")
	}
	return d, nil
}

func newRegistry(cfg config.Config) (*overrides.Registry, error) {
	r, err := cfg.Registry(overrides.Default())
	if err != nil {
		return nil, errors.Wrapf(err, "bad override configuration")
	}
	return r, nil
}
