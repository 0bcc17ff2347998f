// Package config loads the optional configuration file of the command line
// tools.  Command line flags override values from the file.
package config

import (
	"io"
	"os"

	"github.com/birkland/iiif/overrides"
	"github.com/birkland/iiif/validate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the configuration file schema
type Config struct {
	RaiseWarnings    bool              `yaml:"raise_warnings"`
	WarningsAsErrors bool              `yaml:"warnings_as_errors"`
	Concurrency      int               `yaml:"concurrency"`
	OnCheck          string            `yaml:"on_check"`
	Aliases          map[string]string `yaml:"aliases,omitempty"`  // hostname -> bundle name
	Disabled         []string          `yaml:"disabled,omitempty"` // bundle names
	Log              Log               `yaml:"log"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		RaiseWarnings: true,
		Concurrency:   10,
		OnCheck:       validate.DefaultOnCheck.String(),
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a configuration file.  Keys absent from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "could not open config file %s", path)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "bad config file %s", path)
	}
	return cfg, nil
}

// Parse decodes a configuration from yaml.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "could not decode yaml")
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be checked by decoding alone.
func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return errors.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if _, err := validate.ParseOnCheck(c.OnCheck); err != nil {
		return errors.Wrap(err, "bad on_check")
	}
	return nil
}

// Options translates the configuration into validator options.
func (c Config) Options() ([]validate.Option, error) {
	on, err := validate.ParseOnCheck(c.OnCheck)
	if err != nil {
		return nil, err
	}

	return []validate.Option{
		validate.RaiseWarnings(c.RaiseWarnings),
		validate.WarningsAsErrors(c.WarningsAsErrors),
		validate.WithOnCheck(on),
	}, nil
}

// Registry applies the configured disabled bundles and aliases to a registry.
func (c Config) Registry(base *overrides.Registry) (*overrides.Registry, error) {
	r, err := base.Without(c.Disabled...)
	if err != nil {
		return nil, err
	}
	return r.WithAliases(c.Aliases)
}
