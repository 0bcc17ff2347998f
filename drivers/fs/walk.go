package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/birkland/iiif"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

const (
	dontGoDeeper = true
	goDeeper     = false
)

// Walk visits every manifest file found at the given locations.  A location
// may be a manifest file, or a directory to be searched recursively; hidden
// directories and files are skipped.  With no locations, the driver's root is
// walked.
//
// The walk stops at the first error returned by f.
func (d *Driver) Walk(f func(iiif.DocumentRef) error, locs ...string) error {
	if len(locs) == 0 {
		if d.cfg.Root == "" {
			return errors.New("nothing to walk: no locations given, and no root configured")
		}
		locs = []string{"."}
	}

	for _, loc := range locs {
		if err := d.walkLoc(d.abs(loc), f); err != nil {
			return err
		}
	}

	return nil
}

func (d *Driver) abs(loc string) string {
	if filepath.IsAbs(loc) || d.cfg.Root == "" {
		return loc
	}
	return filepath.Join(d.cfg.Root, loc)
}

func (d *Driver) walkLoc(loc string, f func(iiif.DocumentRef) error) error {
	info, err := os.Stat(loc)
	if err != nil {
		return errors.Wrapf(err, "error walking %s", loc)
	}

	if !info.IsDir() {
		if !IsManifestFile(loc) {
			return errors.Errorf("%s is not a manifest file", loc)
		}
		return f(iiif.DocumentRef{Addr: loc})
	}

	return fsWalk(loc, func(ospath string, e *godirwalk.Dirent) (bool, error) {
		hidden := ospath != loc && strings.HasPrefix(e.Name(), ".")

		if e.IsDir() || (e.IsSymlink() && isDir(ospath)) {
			if hidden {
				d.log().Debug().Str("dir", ospath).Msg("skipping hidden directory")
				return dontGoDeeper, nil
			}
			return goDeeper, nil
		}

		if hidden || !IsManifestFile(ospath) {
			return dontGoDeeper, nil
		}

		d.log().Debug().Str("file", ospath).Msg("found manifest file")
		return dontGoDeeper, f(iiif.DocumentRef{Addr: ospath})
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

type skip struct {
	action godirwalk.ErrorAction
}

func (skip) Error() string {
	return "node is skipped"
}

// Callback to be invoked each time a fs entry is encountered.
// Returns a Boolean indicating whether the current fs entry should be a
// considered a terminal (leaf) node.  If true, any children will not be
// walked.  Any error will terminate a walk entirely.
type fsCallback func(ospath string, e *godirwalk.Dirent) (terminal bool, err error)

func fsWalk(dir string, f fsCallback) error {
	var cause error

	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(ospath string, dirent *godirwalk.Dirent) error {
			terminal, err := f(ospath, dirent)
			if err != nil {
				cause = err
				return err
			}
			if terminal && (dirent.IsDir() || dirent.IsSymlink()) {
				return skip{godirwalk.SkipNode}
			}
			return nil
		},
		ErrorCallback: func(ospath string, err error) godirwalk.ErrorAction {
			if s, ok := errors.Cause(err).(skip); ok {
				return s.action
			}
			return godirwalk.Halt
		},
		Unsorted:            false,
		FollowSymbolicLinks: true,
	})

	if cause != nil {
		return cause
	}
	return errors.Wrapf(err, "error walking directory %s", dir)
}
