// Package markdown renders post bodies (front matter already removed) to HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Options toggles the renderer features. The zero value disables all of them;
// DefaultOptions matches the blog's configuration.
type Options struct {
	// HTML passes raw HTML in the Markdown through verbatim.
	HTML bool
	// Linkify turns bare URLs into links.
	Linkify bool
	// Typographer replaces straight quotes and dashes with typographic ones.
	Typographer bool
}

// DefaultOptions enables raw HTML, linkify and typographic substitutions.
func DefaultOptions() Options {
	return Options{HTML: true, Linkify: true, Typographer: true}
}

// Renderer converts Markdown to HTML.
type Renderer struct {
	opts Options
}

// NewRenderer returns a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render converts body to HTML. Fenced and indented code blocks are written by
// code; a nil code uses EscapedFormatter.
func (r *Renderer) Render(body []byte, code CodeFormatter) ([]byte, error) {
	if code == nil {
		code = EscapedFormatter{}
	}

	var buf bytes.Buffer
	if err := r.goldmark(code).Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) goldmark(code CodeFormatter) goldmark.Markdown {
	var exts []goldmark.Extender
	if r.opts.Linkify {
		exts = append(exts, extension.Linkify)
	}
	if r.opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	rendererOpts := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(newCodeBlockRenderer(code), 100)),
	}
	if r.opts.HTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}
