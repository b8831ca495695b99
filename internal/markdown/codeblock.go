package markdown

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// CodeFormatter writes the HTML for one code block. lang is the first word of the
// fence info string, empty for indented blocks and bare fences.
type CodeFormatter interface {
	FormatCode(w io.Writer, code, lang string) error
}

// CodeFormatterFunc adapts a function to CodeFormatter.
type CodeFormatterFunc func(w io.Writer, code, lang string) error

func (f CodeFormatterFunc) FormatCode(w io.Writer, code, lang string) error {
	return f(w, code, lang)
}

var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters of code text.
func EscapeHTML(s string) string {
	return codeEscaper.Replace(s)
}

// EscapedFormatter emits escaped plain text tagged with a language-{lang} class;
// colorization is left to highlight.js in the browser.
type EscapedFormatter struct{}

func (EscapedFormatter) FormatCode(w io.Writer, code, lang string) error {
	var err error
	if lang != "" {
		_, err = io.WriteString(w, `<pre><code class="language-`+EscapeHTML(lang)+`">`+EscapeHTML(code)+"</code></pre>\n")
	} else {
		_, err = io.WriteString(w, "<pre><code>"+EscapeHTML(code)+"</code></pre>\n")
	}
	return err
}

type codeBlockRenderer struct {
	format CodeFormatter
}

func newCodeBlockRenderer(format CodeFormatter) renderer.NodeRenderer {
	return &codeBlockRenderer{format: format}
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFenced)
	reg.Register(ast.KindCodeBlock, r.renderIndented)
}

func (r *codeBlockRenderer) renderFenced(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := ""
	if l := n.Language(source); l != nil {
		lang = string(l)
	}
	return ast.WalkSkipChildren, r.format.FormatCode(w, blockText(n, source), lang)
}

func (r *codeBlockRenderer) renderIndented(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	return ast.WalkSkipChildren, r.format.FormatCode(w, blockText(node, source), "")
}

func blockText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}
