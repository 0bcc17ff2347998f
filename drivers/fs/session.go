package fs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/metadata"
	"github.com/pkg/errors"
)

type session struct {
	sync.Mutex
	driver  *Driver
	dir     string
	written map[string]string // relative path -> document id
}

// Session writes corrected documents into one output directory.  A Session is
// safe for concurrent use.
type Session interface {
	Put(ref iiif.DocumentRef, doc interface{}) (string, error)
}

// Open creates a session writing documents under the given directory, which is
// created if it does not exist.
func (d *Driver) Open(dir string) (Session, error) {
	if d.cfg.OutputPath == nil {
		return nil, errors.New("no output path generator given! (check driver config)")
	}

	dir, err := filepath.Abs(d.abs(dir))
	if err != nil {
		return nil, errors.Wrapf(err, "could not calculate absolute path of %s", dir)
	}

	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, errors.Wrapf(err, "could not create output directory %s", dir)
	}

	return &session{
		driver:  d,
		dir:     dir,
		written: make(map[string]string),
	}, nil
}

// Put writes a document to the path generated from its id, and returns that
// path.  Two documents mapping to the same path within a session is an error;
// the first one written is kept.
func (s *session) Put(ref iiif.DocumentRef, doc interface{}) (string, error) {
	id := ref.ID
	if id == "" {
		if m, ok := doc.(metadata.Document); ok {
			id = metadata.ID(m)
		}
	}
	if id == "" {
		return "", errors.Errorf("cannot place document from %s: it has no @id", ref.Addr)
	}

	rel := filepath.FromSlash(strings.TrimLeft(s.driver.cfg.OutputPath.Generate(id), "/"))
	path := filepath.Join(s.dir, rel)
	if !strings.HasPrefix(path, s.dir+string(filepath.Separator)) {
		return "", errors.Errorf("output path for %s escapes the output directory", id)
	}

	if err := s.claim(rel, id); err != nil {
		return "", err
	}

	if err := WriteDocument(path, doc); err != nil {
		s.release(rel)
		return "", errors.Wrapf(err, "could not write %s", id)
	}

	s.driver.log().Debug().Str("id", id).Str("file", path).Msg("wrote corrected manifest")
	return path, nil
}

func (s *session) claim(rel, id string) error {
	s.Lock()
	defer s.Unlock()

	if other, ok := s.written[rel]; ok {
		return errors.Errorf("%s and %s both map to %s", other, id, rel)
	}
	s.written[rel] = id
	return nil
}

func (s *session) release(rel string) {
	s.Lock()
	defer s.Unlock()
	delete(s.written, rel)
}
