package frontmatter

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnterminated is returned when a document opens a frontmatter block but
// never closes it.
var ErrUnterminated = errors.New("missing closing frontmatter delimiter")

// Split separates the YAML frontmatter block from the Markdown body.
// ok is false when content does not start with a "---" line, in which case
// body is the full content. CRLF line endings are accepted.
func Split(content []byte) (matter, body []byte, ok bool, err error) {
	var start int
	switch {
	case bytes.HasPrefix(content, []byte("---\n")):
		start = 4
	case bytes.HasPrefix(content, []byte("---\r\n")):
		start = 5
	default:
		return nil, content, false, nil
	}

	rest := content[start:]

	// An empty block closes immediately.
	if bytes.HasPrefix(rest, []byte("---")) {
		return nil, trimLeadingNewline(rest[3:]), true, nil
	}

	idx := bytes.Index(rest, []byte("\n---"))
	if idx < 0 {
		return nil, nil, true, ErrUnterminated
	}

	matter = bytes.TrimSuffix(rest[:idx], []byte("\r"))
	body = trimLeadingNewline(rest[idx+len("\n---"):])
	return matter, body, true, nil
}

func trimLeadingNewline(b []byte) []byte {
	b = bytes.TrimPrefix(b, []byte("\r"))
	return bytes.TrimPrefix(b, []byte("\n"))
}

// Parse extracts YAML frontmatter into matter and returns the body.
// Documents without frontmatter leave matter untouched and return the full
// content as the body.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fm, body, ok, err := Split(content)
	if err != nil {
		return nil, err
	}
	if !ok || len(bytes.TrimSpace(fm)) == 0 {
		return body, nil
	}

	if err := yaml.Unmarshal(fm, matter); err != nil {
		return nil, err
	}
	return body, nil
}

// Format renders matter as a YAML frontmatter block followed by body.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
