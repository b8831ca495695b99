package post

import (
	"fmt"
	"strings"
	"time"
)

// Front matter keys.
const (
	KeyTitle       = "title"
	KeyDate        = "date"
	KeyExcerpt     = "excerpt"
	KeyTags        = "tags"
	KeyReadingTime = "readingTime"
	KeyPrevPost    = "prevPost"
	KeyNextPost    = "nextPost"
)

// RequiredKeys are expected in every post. Their absence is reported, not fatal.
var RequiredKeys = []string{KeyTitle, KeyDate, KeyExcerpt, KeyTags, KeyReadingTime}

// Meta is the typed view of a post's front matter.
type Meta struct {
	Title       string
	Date        string
	Excerpt     string
	ReadingTime string
	Tags        []string
	PrevPost    string
	NextPost    string
	// Missing lists the required keys absent from the front matter.
	Missing []string
}

// ParseMeta reads the known keys out of fields. Tags default to an empty list,
// excerpt to "", readingTime to defaultReadingTime.
func ParseMeta(fields map[string]any, defaultReadingTime string) Meta {
	m := Meta{
		Title:       stringField(fields, KeyTitle),
		Date:        stringField(fields, KeyDate),
		Excerpt:     stringField(fields, KeyExcerpt),
		ReadingTime: stringField(fields, KeyReadingTime),
		Tags:        tagsField(fields),
		PrevPost:    stringField(fields, KeyPrevPost),
		NextPost:    stringField(fields, KeyNextPost),
	}
	if m.ReadingTime == "" {
		m.ReadingTime = defaultReadingTime
	}
	for _, k := range RequiredKeys {
		if v, ok := fields[k]; !ok || v == nil {
			m.Missing = append(m.Missing, k)
		}
	}
	return m
}

func stringField(fields map[string]any, key string) string {
	return scalarString(fields[key])
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func tagsField(fields map[string]any) []string {
	tags := []string{}
	switch t := fields[KeyTags].(type) {
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(scalarString(item)); s != "" {
				tags = append(tags, s)
			}
		}
	case nil:
	default:
		if s := strings.TrimSpace(scalarString(t)); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
