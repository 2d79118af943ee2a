package content

import (
	"slices"
	"strings"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
)

// Compare orders posts by date descending, then title ascending (byte-wise).
// Missing or unparseable dates compare as the epoch.
func Compare(a, b Post) int {
	if c := sortKey(b.Date).Compare(sortKey(a.Date)); c != 0 {
		return c
	}
	return strings.Compare(a.Title, b.Title)
}

// Sort orders posts in place. The sort is stable.
func Sort(posts []Post) {
	slices.SortStableFunc(posts, Compare)
}

// CheckUnique rejects collections where two posts share a slug, since both would be
// written to the same page directory. Slugs must also be a single path segment and must
// not name one of the reserved entries of the page directory.
func CheckUnique(posts []Post, reserved ...string) error {
	seen := make(map[string]string, len(posts))
	for _, p := range posts {
		if err := CheckSlug(p, reserved...); err != nil {
			return err
		}
		if prev, ok := seen[p.Slug]; ok {
			return errors.ValidationError("duplicate post slug").
				WithContext("slug", p.Slug).
				WithContext("file", p.File).
				WithContext("conflicts_with", prev).
				Build()
		}
		seen[p.Slug] = p.File
	}
	return nil
}

// CheckSlug rejects empty slugs, slugs that are not a single path segment, and reserved
// names.
func CheckSlug(p Post, reserved ...string) error {
	var reason string
	switch {
	case p.Slug == "":
		reason = "post slug is empty"
	case p.Slug == "." || p.Slug == ".." || strings.ContainsAny(p.Slug, `/\`):
		reason = "post slug is not a single path segment"
	case slices.Contains(reserved, p.Slug):
		reason = "post slug is reserved"
	default:
		return nil
	}
	return errors.ValidationError(reason).
		WithContext("slug", p.Slug).
		WithContext("file", p.File).
		Build()
}
