package emit

import "strings"

var (
	xmlReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
		"\r", "&#xD;",
	)
	htmlReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// XMLEscape escapes text for XML element content and attribute values. Characters
// outside the XML 1.0 Char production are dropped, and carriage returns are written as
// character references so parsers do not normalise them away.
func XMLEscape(s string) string {
	return xmlReplacer.Replace(strings.Map(xmlChar, s))
}

func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return -1
	}
	return r
}

// HTMLEscape escapes text for HTML element content and quoted attribute values.
func HTMLEscape(s string) string {
	return htmlReplacer.Replace(s)
}
