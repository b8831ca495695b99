// Package assets embeds the client-side scripts every page loads from /js/.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"git.home.luguber.info/inful/blogbuilder/internal/output"
)

//go:embed js/*.js
var scripts embed.FS

// Script names, relative to the scripts directory.
const (
	ThemeScript    = "theme.js"
	LanguageScript = "language.js"
	SearchScript   = "search.js"
)

// Names lists the embedded scripts in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(scripts, "js")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Read returns the content of one embedded script.
func Read(name string) ([]byte, error) {
	data, err := scripts.ReadFile("js/" + name)
	if err != nil {
		return nil, fmt.Errorf("embedded script %s: %w", name, err)
	}
	return data, nil
}

// WriteScripts writes every embedded script into dir, replacing existing copies.
// It returns the written paths.
func WriteScripts(dir string) ([]string, error) {
	names := Names()
	written := make([]string, 0, len(names))
	for _, name := range names {
		data, err := Read(name)
		if err != nil {
			return written, err
		}
		path, err := output.WriteUnder(dir, name, data)
		if err != nil {
			return written, fmt.Errorf("emit %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
