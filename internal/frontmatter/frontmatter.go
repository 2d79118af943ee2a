// Package frontmatter splits a post source into its `---` delimited metadata block and
// markdown body.
package frontmatter

import (
	"strings"
)

const delimiter = "---"

// Document is a parsed post source.
type Document struct {
	// Meta holds lower-cased, trimmed keys mapped to trimmed string values.
	Meta map[string]string
	// Body is the text following the metadata block, or the whole input when there is none.
	Body string
	// Block is the raw text between the delimiters.
	Block string
}

// Style captures the newline convention of a document.
type Style struct {
	Newline string
}

// Split separates the metadata block from the body.
//
// The block must open with a `---` line at offset 0 and close at the first following
// line that is exactly `---`. If either delimiter is missing, had is false and body is
// the full input.
func Split(content string) (block string, body string, had bool) {
	nl := detectStyle(content).Newline
	open := delimiter + nl
	if !strings.HasPrefix(content, open) {
		return "", content, false
	}
	rest := content[len(open):]

	if end, ok := closingLineEnd(rest, 0, nl); ok {
		return "", trimLeadingNewline(rest[end:], nl), true
	}

	closeSeq := nl + delimiter
	offset := 0
	for {
		idx := strings.Index(rest[offset:], closeSeq)
		if idx < 0 {
			return "", content, false
		}
		start := offset + idx
		if end, ok := closingLineEnd(rest, start+len(nl), nl); ok {
			return rest[:start], trimLeadingNewline(rest[end:], nl), true
		}
		offset = start + len(closeSeq)
	}
}

// closingLineEnd reports whether a `---` line starts at pos and returns the offset
// just past the delimiter.
func closingLineEnd(s string, pos int, nl string) (int, bool) {
	if !strings.HasPrefix(s[pos:], delimiter) {
		return 0, false
	}
	end := pos + len(delimiter)
	if end == len(s) || strings.HasPrefix(s[end:], nl) {
		return end, true
	}
	return 0, false
}

func trimLeadingNewline(s, nl string) string {
	return strings.TrimPrefix(s, nl)
}

// Parse splits content and decodes the metadata block into key/value pairs.
//
// Each line is split at its first colon. Lines without a colon, or whose colon is the
// first character, are ignored. Values are never interpreted beyond trimming.
func Parse(content string) Document {
	block, body, had := Split(content)
	meta := map[string]string{}
	if !had {
		return Document{Meta: meta, Body: body}
	}

	for _, line := range strings.Split(block, "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		if key == "" {
			continue
		}
		meta[key] = strings.TrimSpace(line[idx+1:])
	}
	return Document{Meta: meta, Body: body, Block: block}
}

// Get returns the trimmed value for key, or "" when absent.
func (d Document) Get(key string) string {
	return d.Meta[strings.ToLower(key)]
}

func detectStyle(content string) Style {
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			return Style{Newline: "\r\n"}
		}
		if content[i] == '\n' {
			return Style{Newline: "\n"}
		}
	}
	return Style{Newline: "\n"}
}
