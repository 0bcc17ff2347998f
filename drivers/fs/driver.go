package fs

import (
	"os"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/fspath"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Driver reads manifest documents from the local filesystem, and writes
// corrected ones back to it.
type Driver struct {
	cfg Config
}

var _ iiif.Driver = &Driver{}

// Config encapsulates a filesystem driver config.
//
// Relative locations given to Walk are resolved against Root, when given.  The
// output path generator is mandatory whenever the Driver will be used to write
// corrected documents, and maps each document's @id to its path within the
// output directory.
type Config struct {
	Root       string           // base directory for relative locations
	OutputPath fspath.Generator // output paths based on document @id
	Logger     *zerolog.Logger
}

// NewDriver initializes a new filesystem driver.
func NewDriver(cfg Config) (*Driver, error) {
	if cfg.Root != "" {
		info, err := os.Stat(cfg.Root)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open root %s", cfg.Root)
		}
		if !info.IsDir() {
			return nil, errors.Errorf("%s is not a directory", cfg.Root)
		}
	}

	if cfg.OutputPath == nil {
		cfg.OutputPath = fspath.ByHost
	}

	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	return &Driver{cfg: cfg}, nil
}

func (d *Driver) log() *zerolog.Logger {
	if d.cfg.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return d.cfg.Logger
}
