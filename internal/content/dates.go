package content

import (
	"time"

	"github.com/araddon/dateparse"
)

// epoch is the sort position of undated posts.
var epoch = time.Unix(0, 0).UTC()

// ParseDate parses a post date in any common layout. Zone-less values are read as UTC.
// Fragments that only parse to year 0 (e.g. "1/" or "12:") count as unparseable.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil || t.UTC().Year() < 1 {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// sortKey returns the parsed date or the epoch for missing/unparseable values.
func sortKey(value string) time.Time {
	if t, ok := ParseDate(value); ok {
		return t
	}
	return epoch
}

// PubDate formats a post date for RSS (RFC 1123 with a GMT zone). It returns "" when
// the date is missing or unparseable.
func PubDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return FormatPubDate(t)
}

// FormatPubDate formats t in UTC as "Mon, 02 Jan 2006 15:04:05 GMT".
func FormatPubDate(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT"
}

// ISODate returns the date as RFC 3339, or "" when missing or unparseable.
func ISODate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}
