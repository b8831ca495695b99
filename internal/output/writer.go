// Package output writes generated files under a site root.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve joins relativePath onto root and rejects paths that would escape it.
func Resolve(root, relativePath string) (string, error) {
	if root == "" {
		return "", errors.New("output root is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q must be relative to the site root", relativePath)
	}

	fullPath := filepath.Join(root, cleanRel)
	rel, err := filepath.Rel(root, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q escapes the site root", relativePath)
	}
	return fullPath, nil
}

// WriteFile writes content to path, creating parent directories and replacing any
// existing file. The content is written to a temporary sibling first and renamed
// into place, so readers never observe a partially written file.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close output file: %w", err)
	}
	// #nosec G302 -- generated site files are meant to be world-readable.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod output file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace output file: %w", err)
	}
	return nil
}

// WriteUnder resolves relativePath against root and writes content there.
// It returns the full path written.
func WriteUnder(root, relativePath string, content []byte) (string, error) {
	fullPath, err := Resolve(root, relativePath)
	if err != nil {
		return "", err
	}
	if err := WriteFile(fullPath, content); err != nil {
		return "", err
	}
	return fullPath, nil
}
