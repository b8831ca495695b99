package markdown

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ChromaFormatter colorizes code at build time with class-based chroma markup.
// The matching stylesheet is not generated; sites using it ship their own.
type ChromaFormatter struct {
	Style string
}

func (f ChromaFormatter) FormatCode(w io.Writer, code, lang string) error {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		// Unknown or missing language: keep the browser-side path.
		return EscapedFormatter{}.FormatCode(w, code, lang)
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(f.Style)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return chromahtml.New(chromahtml.WithClasses(true)).Format(w, style, iterator)
}
