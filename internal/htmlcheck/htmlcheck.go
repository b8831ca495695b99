// Package htmlcheck performs a structural sanity check on generated pages:
// every non-void element that is opened must be closed in order.
package htmlcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Problem is one structural defect found in a document.
type Problem struct {
	Line    int
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s", p.Line, p.Message)
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

type openTag struct {
	name string
	line int
}

// Check tokenizes the document and reports unbalanced tags and a missing doctype.
// It returns an error only when reading fails.
func Check(r io.Reader) ([]Problem, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var (
		problems   []Problem
		stack      []openTag
		sawDoctype bool
		line       = 1
	)

	z := html.NewTokenizer(bytes.NewReader(src))
	for {
		tt := z.Next()
		raw := z.Raw()
		tokenLine := line
		line += bytes.Count(raw, []byte("\n"))

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize: %w", err)
			}
			for i := len(stack) - 1; i >= 0; i-- {
				problems = append(problems, Problem{Line: stack[i].line, Message: fmt.Sprintf("unclosed <%s>", stack[i].name)})
			}
			if !sawDoctype {
				problems = append([]Problem{{Line: 1, Message: "missing <!DOCTYPE html>"}}, problems...)
			}
			return problems, nil

		case html.DoctypeToken:
			sawDoctype = true

		case html.StartTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if voidElements[a] {
				continue
			}
			stack = append(stack, openTag{name: string(name), line: tokenLine})

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			idx := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == tag {
					idx = i
					break
				}
			}
			if idx < 0 {
				problems = append(problems, Problem{Line: tokenLine, Message: fmt.Sprintf("unexpected </%s>", tag)})
				continue
			}
			for i := len(stack) - 1; i > idx; i-- {
				problems = append(problems, Problem{Line: stack[i].line, Message: fmt.Sprintf("<%s> closed implicitly by </%s>", stack[i].name, tag)})
			}
			stack = stack[:idx]
		}
	}
}

// CheckBytes is Check over an in-memory document.
func CheckBytes(doc []byte) []Problem {
	problems, _ := Check(bytes.NewReader(doc))
	return problems
}
