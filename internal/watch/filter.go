package watch

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

const triggerOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

// Relevant reports whether an event should trigger a rebuild.
func Relevant(event fsnotify.Event) bool {
	if event.Op&triggerOps == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	return strings.HasSuffix(name, ".md") && !Ignored(name)
}

// Ignored reports whether a file or directory name belongs to an editor or
// the OS rather than to the site.
func Ignored(name string) bool {
	switch {
	case name == "", strings.HasPrefix(name, "."):
		return true
	case strings.HasSuffix(name, "~"), strings.HasPrefix(name, "#"):
		return true
	case strings.HasSuffix(name, ".swp"), strings.HasSuffix(name, ".swx"), strings.HasSuffix(name, ".tmp"):
		return true
	}
	return false
}
