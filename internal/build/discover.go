package build

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discover lists the Markdown files directly inside dir in lexical order.
// A missing directory holds no posts and is not an error.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
