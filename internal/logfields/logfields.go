package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyLang       = "lang"
	KeySlug       = "slug"
	KeyURL        = "url"
	KeyPosts      = "posts"
	KeyField      = "field"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Lang(l string) slog.Attr         { return slog.String(KeyLang, l) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Posts(n int) slog.Attr           { return slog.Int(KeyPosts, n) }
func Field(name string) slog.Attr     { return slog.String(KeyField, name) }
func Event(op string) slog.Attr       { return slog.String(KeyEvent, op) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Elapsed reports the time since start in milliseconds.
func Elapsed(start time.Time) slog.Attr {
	return DurationMS(float64(time.Since(start).Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
