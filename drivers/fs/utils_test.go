package fs_test

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/birkland/iiif"
	"github.com/birkland/iiif/drivers/fs"
	"github.com/birkland/iiif/metadata"
	"github.com/go-test/deep"
)

func TestReadDocument(t *testing.T) {
	doc, err := fs.ReadDocument(filepath.Join(testroot, "book1.json"))
	if err != nil {
		t.Fatal(err)
	}

	if id := metadata.ID(doc); id != "http://example.org/iiif/book1/manifest" {
		t.Errorf("unexpected id %s", id)
	}

	canvas := doc["sequences"].([]interface{})[0].(map[string]interface{})["canvases"].([]interface{})[0].(map[string]interface{})
	if canvas["width"] != json.Number("750") {
		t.Errorf("numbers should be decoded as json.Number, got %#v", canvas["width"])
	}
}

func TestReadBroken(t *testing.T) {
	d, _ := fs.NewDriver(fs.Config{Root: testroot})
	if _, err := d.Read(iiif.DocumentRef{Addr: "sub/broken.json"}); err == nil {
		t.Errorf("should have failed to parse a truncated document")
	}
	if _, err := d.Read(iiif.DocumentRef{Addr: "sub/missing.json"}); err == nil {
		t.Errorf("should have failed to read a missing document")
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	original, err := fs.ReadDocument(filepath.Join(testroot, "sub", "book2.json"))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"book2.json", "book2.json.gz", "book2.json.zst"} {
		name := name
		t.Run(name, func(t *testing.T) {
			runInTempDir(t, func(tempDir string) {
				path := filepath.Join(tempDir, "nested", name)
				if err := fs.WriteDocument(path, original); err != nil {
					t.Fatal(err)
				}

				read, err := fs.ReadDocument(path)
				if err != nil {
					t.Fatal(err)
				}
				if diff := deep.Equal(read, original); diff != nil {
					t.Error(diff)
				}

				files, _ := ioutil.ReadDir(filepath.Dir(path))
				if len(files) != 1 {
					t.Errorf("temporary files left behind: %d files", len(files))
				}
			})
		})
	}
}

func TestAtomicWriteCommit(t *testing.T) {
	runInTempDir(t, func(tempDir string) {
		fileName := filepath.Join(tempDir, "atomicCommit")

		content := "(╯°□°）╯︵ ┻━┻"
		_ = ioutil.WriteFile(fileName, []byte("previous content"), 0664)

		writer, _ := fs.AtomicWrite(fileName)
		defer func() {
			err := writer.Close()
			if err != nil {
				t.Errorf("deferred close failed! %s", err)
			}
		}()

		_, _ = io.WriteString(writer, content)

		if err := writer.Close(); err != nil {
			t.Errorf("writer failed close! %s", err)
		}

		readBytes, _ := ioutil.ReadFile(fileName)

		if string(readBytes) != content {
			t.Errorf("did not read the expected content from atomic write")
		}
	})
}

func TestAtomicWriteRollback(t *testing.T) {
	runInTempDir(t, func(tempDir string) {
		fileName := filepath.Join(tempDir, "rollback")
		writer, _ := fs.AtomicWrite(fileName)
		defer func() {
			err := writer.Rollback()
			if err != nil {
				t.Errorf("deferred rollback failed! %s", err)
			}
		}()

		_, _ = io.WriteString(writer, "something")
		err := writer.Rollback()
		if err != nil {
			t.Errorf("error rolling back! %s", err)
		}

		files, err := ioutil.ReadDir(tempDir)
		if err != nil || len(files) > 0 {
			t.Errorf("rollback did not clean up temp files!")
		}
	})
}

func TestAtomicConflict(t *testing.T) {
	runInTempDir(t, func(tempDir string) {
		fileName := filepath.Join(tempDir, "err")

		conflictingFileName := filepath.Join(tempDir, fs.AtomicPrefix+"err")
		_ = ioutil.WriteFile(conflictingFileName, []byte("I'm in the way!"), 0664)

		writer, err := fs.AtomicWrite(fileName)
		if err == nil {
			writer.Close()
			t.Errorf("should have thrown an error")
		}
	})
}

func TestManagedWriteCloseError(t *testing.T) {
	badCloser := &fs.ManagedWrite{WriteCloser: &errcloser{}}
	if badCloser.Close() == nil {
		t.Errorf("should have thrown an error")
	}
}

type errcloser struct{}

func (*errcloser) Close() error {
	return fmt.Errorf("an error")
}
func (*errcloser) Write([]byte) (int, error) {
	return 0, nil
}

func runInTempDir(t *testing.T, f func(string)) {
	tempDir, err := ioutil.TempDir("", "iiif_test")
	if err != nil {
		t.Fatal("Could not create testing temp dir")
	}
	defer os.RemoveAll(tempDir)
	f(tempDir)
}
