// Package markdown renders post bodies to HTML and derives plain-text fragments from them.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a GFM renderer with automatic heading IDs. Raw HTML in post
// sources is passed through: posts are authored alongside the site.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Render converts body to HTML.
func (r *Renderer) Render(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	fencedCodeRe  = regexp.MustCompile("```[\\s\\S]*?```")
	inlineCodeRe  = regexp.MustCompile("`([^`]+)`")
	imageRe       = regexp.MustCompile(`!\[[^\]]*]\([^)]+\)`)
	linkRe        = regexp.MustCompile(`\[([^\]]+)]\([^)]+\)`)
	headingMarkRe = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockMarkRe   = regexp.MustCompile(`(?m)^[>\-*+]\s+`)
	lineBreaksRe  = regexp.MustCompile(`\r?\n+`)
	firstH1Re     = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// PlainText strips markdown syntax from text. The rules are applied in order: fenced
// code blocks are removed, inline code is unwrapped, images are removed, links are
// replaced by their text, heading and block-quote/list markers are dropped, then all
// whitespace runs collapse to a single space.
func PlainText(text string) string {
	out := fencedCodeRe.ReplaceAllString(text, " ")
	out = inlineCodeRe.ReplaceAllString(out, "$1")
	out = imageRe.ReplaceAllString(out, " ")
	out = linkRe.ReplaceAllString(out, "$1")
	out = headingMarkRe.ReplaceAllString(out, "")
	out = blockMarkRe.ReplaceAllString(out, "")
	out = lineBreaksRe.ReplaceAllString(out, " ")
	return strings.Join(strings.Fields(out), " ")
}

// Truncate returns at most limit runes of s, without any marker.
func Truncate(s string, limit int) string {
	if limit < 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// StripLeadingTitle removes the first non-blank line of body when it is a level-one
// ATX heading. Any other body is returned unchanged.
func StripLeadingTitle(body string) string {
	rest := body
	for rest != "" {
		line, tail, found := strings.Cut(rest, "\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if !found {
				return body
			}
			rest = tail
			continue
		}
		if firstH1Re.MatchString(strings.TrimRight(line, "\r")) {
			return tail
		}
		return body
	}
	return body
}

// FirstHeading returns the trimmed text of the first level-one ATX heading anywhere in
// body, or "" when there is none.
func FirstHeading(body string) string {
	m := firstH1Re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
