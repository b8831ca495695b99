package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrInvalidYAML indicates the frontmatter block is not a valid YAML mapping.
var ErrInvalidYAML = errors.New("invalid yaml frontmatter")

// utf8BOM is stripped from the start of a document before delimiter matching.
var utf8BOM = []byte("\ufeff")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input. A leading UTF-8 byte order mark is dropped. Delimiter
// lines may carry trailing spaces or tabs, and both LF and CRLF line endings are
// accepted; a closing delimiter on the last line without a trailing newline is
// accepted too.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	open, rest, ok := cutLine(content)
	if !ok || !isDelimiter(open) {
		return nil, content, false, nil
	}

	for pos := 0; pos < len(rest); {
		line, _, _ := cutLine(rest[pos:])
		if isDelimiter(line) {
			return rest[:pos], rest[pos+len(line):], true, nil
		}
		pos += len(line)
	}
	return nil, nil, false, ErrMissingClosingDelimiter
}

// cutLine splits off the first line of b, newline included.
func cutLine(b []byte) (line, rest []byte, found bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i+1], b[i+1:], true
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r\n")) == delimiter
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
//
// Unquoted timestamps such as `date: 2025-01-01` decode to time.Time; post.ParseMeta
// turns them back into date text.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Read splits a markdown document into YAML frontmatter fields and body.
//
// Contract:
//   - If the input doesn't start with a frontmatter delimiter, fields is empty and body is the full input.
//   - If the input starts with a delimiter but is missing the closing delimiter, returns ErrMissingClosingDelimiter.
//   - If frontmatter is present but empty, fields is an empty map.
func Read(content []byte) (fields map[string]any, body []byte, err error) {
	raw, body, _, err := Split(content)
	if err != nil {
		return nil, nil, err
	}

	fields, err = ParseYAML(raw)
	if err != nil {
		return nil, nil, err
	}
	return fields, body, nil
}
