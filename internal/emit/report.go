package emit

import (
	"encoding/json"

	"github.com/wayfarer-games/sitegen/internal/content"
)

// ReportEntry describes one emitted post.
type ReportEntry struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	URL         string `json:"url"`
	File        string `json:"file"`
	Fingerprint string `json:"fingerprint"`
}

// Report is the machine-readable summary of a build. It contains no timestamps so
// identical inputs produce identical bytes.
type Report struct {
	Site     string        `json:"site"`
	Revision string        `json:"revision,omitempty"`
	Count    int           `json:"count"`
	Posts    []ReportEntry `json:"posts"`
}

// BuildReport renders the build report as indented JSON.
func BuildReport(posts []content.Post, site Site) (string, error) {
	r := Report{Site: site.BaseURL, Revision: site.Revision, Count: len(posts), Posts: make([]ReportEntry, 0, len(posts))}
	for _, p := range posts {
		r.Posts = append(r.Posts, ReportEntry{
			Slug:        p.Slug,
			Title:       p.Title,
			Date:        p.Date,
			URL:         p.URL,
			File:        p.File,
			Fingerprint: p.Fingerprint,
		})
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
