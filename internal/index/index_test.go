package index

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
)

func TestSort_LanguageThenDateThenURL(t *testing.T) {
	records := []Record{
		{URL: "/es/posts/b.html", Date: "2025-01-01", Lang: i18n.Spanish},
		{URL: "/posts/old.html", Date: "2024-06-01", Lang: i18n.English},
		{URL: "/posts/z.html", Date: "2025-03-15", Lang: i18n.English},
		{URL: "/posts/a.html", Date: "2025-03-15", Lang: i18n.English},
		{URL: "/posts/undated.html", Date: "", Lang: i18n.English},
		{URL: "/es/posts/a.html", Date: "2025-02-01", Lang: i18n.Spanish},
	}

	Sort(records)

	var urls []string
	for _, r := range records {
		urls = append(urls, r.URL)
	}
	assert.Equal(t, []string{
		"/posts/a.html",
		"/posts/z.html",
		"/posts/old.html",
		"/posts/undated.html",
		"/es/posts/a.html",
		"/es/posts/b.html",
	}, urls)
}

func TestMarshal_Format(t *testing.T) {
	data, err := Marshal([]Record{{
		Title:       "Hello & <welcome>",
		URL:         "/posts/hello.html",
		Date:        "2025-01-01",
		Excerpt:     "Hi",
		ReadingTime: "5 min read",
		Lang:        i18n.English,
	}})
	require.NoError(t, err)

	want := `[
  {
    "title": "Hello & <welcome>",
    "url": "/posts/hello.html",
    "date": "2025-01-01",
    "tags": [],
    "excerpt": "Hi",
    "readingTime": "5 min read",
    "lang": "en"
  }
]`
	assert.Equal(t, want, string(data))
}

func TestMarshal_EmptyIndex(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWrite_CreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "posts.json")
	in := []Record{{Title: "A", URL: "/posts/a.html", Tags: []string{"x", "y"}, Lang: i18n.English}}

	require.NoError(t, Write(path, in))
	// #nosec G304 -- test fixture path.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []Record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestCheckUnique(t *testing.T) {
	require.NoError(t, CheckUnique([]Record{{URL: "/posts/a.html"}, {URL: "/es/posts/a.html"}}))

	err := CheckUnique([]Record{{URL: "/posts/a.html"}, {URL: "/posts/a.html"}})
	var dup *DuplicateURLError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "/posts/a.html", dup.URL)
}
