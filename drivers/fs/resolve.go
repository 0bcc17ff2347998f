package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Encodings of manifest files, by file suffix
const (
	plainSuffix = ".json"
	gzipSuffix  = ".json.gz"
	zstdSuffix  = ".json.zst"
)

type encoding int

const (
	unsupported encoding = iota
	plain
	gzipped
	zstandard
)

// encodingOf determines the encoding of a manifest file from its name.
func encodingOf(path string) encoding {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasPrefix(name, "."):
		return unsupported
	case strings.HasSuffix(name, gzipSuffix):
		return gzipped
	case strings.HasSuffix(name, zstdSuffix):
		return zstandard
	case strings.HasSuffix(name, plainSuffix):
		return plain
	}
	return unsupported
}

// IsManifestFile reports whether the driver will read the given file as a
// manifest.  Hidden files are never read.
func IsManifestFile(path string) bool {
	return encodingOf(path) != unsupported
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openDecoded opens a manifest file, decompressing as necessary.
func openDecoded(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}

	switch encodingOf(path) {
	case gzipped:
		zr, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrapf(err, "could not read gzip stream of %s", path)
		}
		return &readCloser{Reader: zr, closers: []func() error{zr.Close, file.Close}}, nil
	case zstandard:
		zr, err := zstd.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrapf(err, "could not read zstd stream of %s", path)
		}
		return &readCloser{Reader: zr, closers: []func() error{
			func() error { zr.Close(); return nil },
			file.Close,
		}}, nil
	}

	return file, nil
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w *writeCloser) Close() error {
	for _, c := range w.closers {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

// encodeTo wraps a writer so that what is written is compressed as the given
// file name demands.  Closing the result does not close w.
func encodeTo(path string, w io.Writer) (io.WriteCloser, error) {
	switch encodingOf(path) {
	case gzipped:
		zw := gzip.NewWriter(w)
		return &writeCloser{Writer: zw, closers: []func() error{zw.Close}}, nil
	case zstandard:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrapf(err, "could not create zstd stream for %s", path)
		}
		return &writeCloser{Writer: zw, closers: []func() error{zw.Close}}, nil
	}
	return &writeCloser{Writer: w}, nil
}
