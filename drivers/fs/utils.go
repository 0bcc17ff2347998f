package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
	"github.com/pkg/errors"
)

// AtomicPrefix is a file prefix for temporary files that are created during
// AtomicWrite
const AtomicPrefix = ".iiif.atomic."

// ReadDocument reads a manifest file, given its path.  Compressed files are
// decompressed according to their suffix.
func ReadDocument(path string) (doc metadata.Document, err error) {
	r, err := openDecoded(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := r.Close(); e != nil && err == nil {
			err = errors.Wrapf(e, "error closing file at %s", path)
		}
	}()

	err = metadata.Parse(r, &doc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse manifest at %s", path)
	}

	return doc, nil
}

// Read reads the document at the given ref, and fills in its ID.
func (d *Driver) Read(ref iiif.DocumentRef) (metadata.Document, error) {
	doc, err := ReadDocument(d.abs(ref.Addr))
	if err != nil {
		return nil, err
	}
	d.log().Debug().Str("file", ref.Addr).Str("id", metadata.ID(doc)).Msg("read manifest")
	return doc, nil
}

// ManagedWrite encapsulates an io.WriteCloser such that the write can be
// rolled back upon error.
type ManagedWrite struct {
	io.WriteCloser
	closeFunc    func() error
	rollbackFunc func() error
	closed       bool
}

// Close frees up any resources and performs the necessary actions to
// commit the write.
func (w *ManagedWrite) Close() error {
	return w.closeWith(w.closeFunc)
}

// Rollback attempts to undo any tangible effects of an incomplete/errored write.
func (w *ManagedWrite) Rollback() error {
	return w.closeWith(w.rollbackFunc)
}

func (w *ManagedWrite) closeWith(f func() error) error {
	if w.closed {
		return nil
	}
	err := w.WriteCloser.Close()
	if err != nil {
		return err
	}
	w.closed = true

	if f != nil {
		return f()
	}

	return nil
}

// AtomicWrite creates a temporary file which is opened for write (only),
// in the same directory as the specified path.  Once written and closed,
// it atomically renames the temp file to match the given path.
//
// Note, Close() may fail.  If it does, it is up to the caller to determine the
// appropriate response (e.g. Rollback(), or log it and manually inspect)
func AtomicWrite(path string) (*ManagedWrite, error) {
	tname := filepath.Join(filepath.Dir(path), AtomicPrefix+filepath.Base(path))
	tfile, err := os.OpenFile(tname, os.O_WRONLY|os.O_EXCL|os.O_CREATE, 0664)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create temporary file %s", tname)
	}

	return &ManagedWrite{
		WriteCloser: tfile,
		closeFunc: func() error {
			err := os.Rename(tname, path)
			return errors.Wrapf(err, "could not rename %s to %s", tname, path)
		},
		rollbackFunc: func() error {
			return os.Remove(tname)
		},
	}, nil
}

// WriteDocument atomically writes a document tree as json to the given path,
// creating any missing parent directories.  Paths ending in .json.gz or
// .json.zst are compressed accordingly.
func WriteDocument(path string, doc interface{}) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0775); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", path)
	}

	out, err := AtomicWrite(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Rollback()
		}
	}()

	enc, err := encodeTo(path, out)
	if err != nil {
		return err
	}

	if err = metadata.Serialize(enc, doc); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}

	if err = enc.Close(); err != nil {
		return errors.Wrapf(err, "could not finish writing %s", path)
	}

	return out.Close()
}
