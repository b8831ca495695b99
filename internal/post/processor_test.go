package post

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/htmlcheck"
	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
	"git.home.luguber.info/inful/blogbuilder/internal/index"
)

const helloPost = `---
title: Hello
date: 2025-01-01
tags: [intro]
excerpt: Hi
---
# Hi there
`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Root = t.TempDir()
	return cfg
}

func writeSource(t *testing.T, cfg *config.Config, lang i18n.Lang, name, content string) string {
	t.Helper()
	dir := cfg.SourceDir(lang)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newProcessor(t *testing.T, cfg *config.Config, opts ...Option) *Processor {
	t.Helper()
	p, err := New(cfg, opts...)
	require.NoError(t, err)
	return p
}

func TestProcess_HelloPost(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "hello.md", helloPost)
	var stdout bytes.Buffer

	rec, err := newProcessor(t, cfg, WithStdout(&stdout)).Process(context.Background(), src, i18n.English)
	require.NoError(t, err)

	assert.Equal(t, index.Record{
		Title:       "Hello",
		URL:         "/posts/hello.html",
		Date:        "2025-01-01",
		Tags:        []string{"intro"},
		Excerpt:     "Hi",
		ReadingTime: "5 min read",
		Lang:        i18n.English,
	}, rec)

	outPath := filepath.Join(cfg.Root, "posts", "hello.html")
	// #nosec G304 -- test fixture path.
	page, err := os.ReadFile(outPath)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "<h1>Hi there</h1>")
	assert.Contains(t, html, `<span class="tag">intro</span>`)
	assert.Contains(t, html, "January 1, 2025")
	assert.Contains(t, html, `<link rel="alternate" hreflang="es" href="/es/posts/hello.html">`)
	assert.Contains(t, html, `<meta name="description" content="Hi">`)
	assert.Empty(t, htmlcheck.CheckBytes(page))

	assert.Equal(t, "Processing: "+src+" (en)\n✓ Generated: "+outPath+"\n", stdout.String())
}

func TestProcess_SpanishPost(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.Spanish, "hola.md", "---\ntitle: Hola\ndate: 2025-03-15\n---\nTexto\n")

	res, err := newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.Spanish)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.Root, "es", "posts", "hola.html"), res.OutputPath)
	assert.Equal(t, "/es/posts/hola.html", res.Record.URL)
	assert.Equal(t, i18n.Spanish, res.Record.Lang)
	assert.Equal(t, "hola", res.Slug)

	// #nosec G304 -- test fixture path.
	page, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "15 de marzo de 2025")
	assert.Contains(t, string(page), `<link rel="alternate" hreflang="en" href="/posts/hola.html">`)
	assert.Contains(t, string(page), `<a href="/es/posts/index.html" class="btn btn-secondary">Todas las Publicaciones</a>`)
}

func TestProcess_WritesExactlyOneFile(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "only.md", helloPost)

	_, err := newProcessor(t, cfg).Process(context.Background(), src, i18n.English)
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.OutputDir(i18n.English))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "only.html", entries[0].Name())
}

func TestProcess_URLRoundTrip(t *testing.T) {
	cfg := newTestConfig(t)
	p := newProcessor(t, cfg)

	for _, lang := range i18n.All {
		src := writeSource(t, cfg, lang, "same-slug.md", helloPost)
		rec, err := p.Process(context.Background(), src, lang)
		require.NoError(t, err)

		alternate := i18n.PostURL("same-slug", lang.Other())
		assert.Equal(t, i18n.StripPrefix(rec.URL), i18n.StripPrefix(alternate))
		assert.Equal(t, alternate, i18n.AlternatePath(rec.URL))
	}
}

func TestProcess_MissingOptionalFieldsDefault(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "bare.md", "---\ntitle: Bare\ndate: 2025-01-01\n---\nBody\n")

	res, err := newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)

	assert.Equal(t, []string{}, res.Record.Tags)
	assert.Empty(t, res.Record.Excerpt)
	assert.Equal(t, "5 min read", res.Record.ReadingTime)
	assert.Contains(t, res.Warnings, "missing tags")
}

func TestProcess_BOMAndPaddedDelimiters(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "bom.md",
		"\ufeff--- \r\ntitle: Padded\r\ndate: 2025-01-01\r\ntags: [a]\r\nexcerpt: E\r\nreadingTime: 2 min read\r\n---\t\r\n# Body\r\n")

	res, err := newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "Padded", res.Record.Title)
	assert.Equal(t, "2025-01-01", res.Record.Date)
	assert.Empty(t, res.Warnings)

	// #nosec G304 -- test fixture path.
	page, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Body</h1>")
	assert.NotContains(t, string(page), "title: Padded")
}

func TestProcess_NoFrontMatterStillRenders(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "plain.md", "# Just text\n")

	res, err := newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)
	assert.Empty(t, res.Record.Title)
	assert.Len(t, res.Warnings, len(RequiredKeys))
}

func TestProcess_Idempotent(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "hello.md", helloPost)
	p := newProcessor(t, cfg)

	first, err := p.ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)
	// #nosec G304 -- test fixture path.
	a, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)

	second, err := p.ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)
	// #nosec G304 -- test fixture path.
	b, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, first.Record, second.Record)
	assert.NotEmpty(t, first.Fingerprint)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestProcess_MissingSourceIsFilesystemError(t *testing.T) {
	cfg := newTestConfig(t)

	_, err := newProcessor(t, cfg).Process(context.Background(), filepath.Join(cfg.Root, "nope.md"), i18n.English)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestProcess_MalformedFrontMatterIsParseError(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := newProcessor(t, cfg).Process(context.Background(), src, i18n.English)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))

	_, statErr := os.Stat(filepath.Join(cfg.Root, "posts", "broken.html"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcess_UnwritableOutputIsFilesystemError(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "hello.md", helloPost)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, "posts"), []byte("not a dir"), 0o600))

	_, err := newProcessor(t, cfg).Process(context.Background(), src, i18n.English)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestProcess_CanceledContext(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "hello.md", helloPost)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newProcessor(t, cfg).Process(ctx, src, i18n.English)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcess_ServerSideHighlighting(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Markdown.CodeHighlight = config.CodeHighlightServer
	src := writeSource(t, cfg, i18n.English, "code.md", "---\ntitle: Code\n---\n```go\nfunc main() {}\n```\n")

	res, err := newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)

	// #nosec G304 -- test fixture path.
	page, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), `class="chroma"`)
	assert.NotContains(t, string(page), `class="language-go"`)
}

func TestProcess_ClientSideHighlightingByDefault(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "code.md", "---\ntitle: Code\n---\n```go\nx := \"<b>\"\n```\n")

	res, err := newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)

	// #nosec G304 -- test fixture path.
	page, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), `<pre><code class="language-go">x := &quot;&lt;b&gt;&quot;`)
}

func TestProcess_StructuralProblemsAreWarnings(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeSource(t, cfg, i18n.English, "raw.md",
		"---\ntitle: Raw\ndate: 2025-01-01\ntags: []\nexcerpt: x\nreadingTime: 1 min read\n---\n<div>\nunclosed raw html\n")

	res, err := newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warnings)

	cfg.Build.CheckHTML = false
	res, err = newProcessor(t, cfg).ProcessFile(context.Background(), src, i18n.English)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
}
