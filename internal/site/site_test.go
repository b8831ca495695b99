package site

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/htmlcheck"
	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultInfo())
	require.NoError(t, err)
	return e
}

func header(t *testing.T, e *Engine, d HeaderData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, e.RenderHeader(&buf, d))
	return buf.String()
}

func TestRenderHeader_English(t *testing.T) {
	out := header(t, newEngine(t), HeaderData{
		Title:        "Hello",
		Description:  "Hi",
		CanonicalURL: "/posts/hello.html",
		AlternateURL: "/es/posts/hello.html",
		Lang:         i18n.English,
	})

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html lang=\"en\">"))
	assert.Contains(t, out, `<meta name="description" content="Hi">`)
	assert.Contains(t, out, "<title>Hello - Steffany Bahamon</title>")
	assert.Contains(t, out, `<link rel="canonical" href="/posts/hello.html">`)
	assert.Contains(t, out, `<link rel="alternate" hreflang="es" href="/es/posts/hello.html">`)
	assert.Contains(t, out, `<a href="/about.html">About</a>`)
	assert.Contains(t, out, `<a href="/posts/index.html" class="active">Posts</a>`)
	assert.Contains(t, out, "❄️ Chicago Winter</button>")
	assert.Contains(t, out, `aria-label="Cambiar a español">ES</a>`)
	assert.Contains(t, out, `<a href="#main" class="skip-link">Skip to content</a>`)
	assert.Contains(t, out, `<script src="/js/theme.js"></script>`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "<article>"))
}

func TestRenderHeader_Spanish(t *testing.T) {
	out := header(t, newEngine(t), HeaderData{
		Title:        "Hola",
		AlternateURL: "/posts/hola.html",
		Lang:         i18n.Spanish,
	})

	assert.Contains(t, out, `<html lang="es">`)
	assert.Contains(t, out, `<link rel="alternate" hreflang="en" href="/posts/hola.html">`)
	assert.Contains(t, out, `<a href="/es/about.html">Sobre Mí</a>`)
	assert.Contains(t, out, `<a href="/es/now.html">Ahora</a>`)
	assert.Contains(t, out, `<a href="/es/posts/index.html" class="active">Publicaciones</a>`)
	assert.Contains(t, out, `<a href="/es/projects.html">Proyectos</a>`)
	assert.Contains(t, out, "❄️ Invierno de Chicago")
	assert.Contains(t, out, `aria-label="Switch to English">EN</a>`)
	assert.NotContains(t, out, `rel="canonical"`)
}

func TestRenderHeader_EscapesInterpolatedText(t *testing.T) {
	out := header(t, newEngine(t), HeaderData{
		Title:       "<script>alert(1)</script>",
		Description: `Say "hi" & go`,
		Lang:        i18n.English,
	})

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt; - Steffany Bahamon")
	assert.Contains(t, out, `content="Say &#34;hi&#34; &amp; go"`)
}

func TestRenderHeader_CanonicalUsesBaseURL(t *testing.T) {
	info := DefaultInfo()
	info.BaseURL = "https://sbahamon.com"
	e, err := New(info)
	require.NoError(t, err)

	out := header(t, e, HeaderData{Title: "x", CanonicalURL: "/posts/x.html", Lang: i18n.English})
	assert.Contains(t, out, `<link rel="canonical" href="https://sbahamon.com/posts/x.html">`)
}

func TestRenderPostHeader(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name string
		lang i18n.Lang
		date string
		want string
	}{
		{name: "english date", lang: i18n.English, date: "2025-03-15", want: `<time datetime="2025-03-15">March 15, 2025</time>`},
		{name: "spanish date", lang: i18n.Spanish, date: "2025-03-15", want: `<time datetime="2025-03-15">15 de marzo de 2025</time>`},
		{name: "unparseable date verbatim", lang: i18n.English, date: "someday", want: `<time datetime="someday">someday</time>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, e.RenderPostHeader(&buf, "Hello", tt.date, "3 min read", []string{"intro", "a&b"}, tt.lang))
			out := buf.String()

			assert.Contains(t, out, "<h1>Hello</h1>")
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, `<span class="reading-time">3 min read</span>`)
			assert.Contains(t, out, `<span class="tag">intro</span>`)
			assert.Contains(t, out, `<span class="tag">a&amp;b</span>`)
			assert.Less(t, strings.Index(out, "intro"), strings.Index(out, "a&amp;b"))
		})
	}
}

func TestRenderPostHeader_NoTags(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newEngine(t).RenderPostHeader(&buf, "", "", "5 min read", nil, i18n.English))
	assert.NotContains(t, buf.String(), `class="tag"`)
	assert.Contains(t, buf.String(), "<h1></h1>")
}

func TestRenderFooter_Navigation(t *testing.T) {
	e := newEngine(t)

	var buf bytes.Buffer
	require.NoError(t, e.RenderFooter(&buf, "", "", i18n.English))
	out := buf.String()
	assert.Contains(t, out, "<span></span>")
	assert.Contains(t, out, `<a href="/posts/index.html" class="btn btn-secondary">All Posts</a>`)
	assert.Contains(t, out, `button.textContent = "Copied!"`)
	assert.Contains(t, out, "&copy; 2025 Steffany Bahamon. Connecting Lake Michigan to the Atlantic Ocean.")
	assert.Contains(t, out, `<script src="/js/language.js" defer></script>`)
	assert.Contains(t, out, "highlight.js/11.9.0/highlight.min.js")

	buf.Reset()
	require.NoError(t, e.RenderFooter(&buf, "/es/posts/a.html", "/es/posts/c.html", i18n.Spanish))
	out = buf.String()
	assert.Contains(t, out, `<a href="/es/posts/a.html" class="btn btn-secondary">← Anterior</a>`)
	assert.Contains(t, out, `<a href="/es/posts/c.html" class="btn btn-secondary">Siguiente →</a>`)
	assert.NotContains(t, out, "Todas las Publicaciones")
	assert.Contains(t, out, "Conéctate conmigo en")

	buf.Reset()
	require.NoError(t, e.RenderFooter(&buf, "", "", i18n.Spanish))
	assert.Contains(t, buf.String(), `<a href="/es/posts/index.html" class="btn btn-secondary">Todas las Publicaciones</a>`)
}

func TestFragments_FormOneWellFormedDocument(t *testing.T) {
	e := newEngine(t)

	var buf bytes.Buffer
	require.NoError(t, e.RenderHeader(&buf, HeaderData{Title: "Hello", AlternateURL: "/es/posts/hello.html", Lang: i18n.English}))
	require.NoError(t, e.RenderPostHeader(&buf, "Hello", "2025-03-15", "5 min read", []string{"intro"}, i18n.English))
	buf.WriteString("<h1>Hi there</h1>\n<pre><code class=\"language-go\">x</code></pre>\n")
	require.NoError(t, e.RenderFooter(&buf, "/posts/prev.html", "", i18n.English))

	assert.Empty(t, htmlcheck.CheckBytes(buf.Bytes()))
}
