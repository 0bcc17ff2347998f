package fs_test

import (
	"testing"

	"github.com/birkland/iiif/drivers/fs"
)

func TestNewDriver(t *testing.T) {
	cases := []struct {
		name      string
		path      string
		expectErr bool
	}{
		{"noRoot", "", false},
		{"validRoot", "testdata/collection", false},
		{"notADir", "testdata/collection/book1.json", true},
		{"rootNoExist", "DOES_NOT_EXIST", true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := fs.NewDriver(fs.Config{Root: c.path})
			if (err != nil) != c.expectErr {
				t.Errorf("expected error: %t, got error: %t", c.expectErr, (err != nil))
			}
		})
	}
}
