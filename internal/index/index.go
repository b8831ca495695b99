// Package index maintains the post index (data/posts.json) read by the client-side
// search.
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
	"git.home.luguber.info/inful/blogbuilder/internal/output"
)

// Record is the index entry of one rendered post.
type Record struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Date        string    `json:"date"`
	Tags        []string  `json:"tags"`
	Excerpt     string    `json:"excerpt"`
	ReadingTime string    `json:"readingTime"`
	Lang        i18n.Lang `json:"lang"`
}

// DuplicateURLError reports two sources that map to the same page.
type DuplicateURLError struct {
	URL string
}

func (e *DuplicateURLError) Error() string {
	return fmt.Sprintf("duplicate post url %s", e.URL)
}

// CheckUnique returns a *DuplicateURLError for the first URL seen twice.
func CheckUnique(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.URL]; ok {
			return &DuplicateURLError{URL: r.URL}
		}
		seen[r.URL] = struct{}{}
	}
	return nil
}

// Sort orders records English first, then Spanish; within a language newest
// first, with equal dates ordered by URL. Unparseable dates sort last.
func Sort(records []Record) {
	rank := make(map[i18n.Lang]int, len(i18n.All))
	for i, l := range i18n.All {
		rank[l] = i
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if rank[a.Lang] != rank[b.Lang] {
			return rank[a.Lang] < rank[b.Lang]
		}
		ta, okA := i18n.ParseDate(a.Date)
		tb, okB := i18n.ParseDate(b.Date)
		switch {
		case okA && okB && !ta.Equal(tb):
			return ta.After(tb)
		case okA != okB:
			return okA
		case !okA && !okB && a.Date != b.Date:
			return a.Date > b.Date
		}
		return a.URL < b.URL
	})
}

// Marshal renders records as a two-space indented JSON array. Tags are always
// emitted as an array.
func Marshal(records []Record) ([]byte, error) {
	normalized := make([]Record, len(records))
	for i, r := range records {
		if r.Tags == nil {
			r.Tags = []string{}
		}
		normalized[i] = r
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized); err != nil {
		return nil, fmt.Errorf("encode post index: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write replaces the index file at path with records.
func Write(path string, records []Record) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}
	return output.WriteFile(path, data)
}
