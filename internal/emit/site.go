// Package emit renders the static assets derived from the sorted post collection.
// Every emitter is a pure function of its inputs.
package emit

import "time"

// Site carries the configuration values interpolated into emitted assets.
type Site struct {
	BaseURL     string
	Title       string
	Description string
	Language    string
	// StaticPaths are site-relative paths listed in the sitemap before any post.
	StaticPaths []string
	// Now stamps lastBuildDate when there are no posts to take it from.
	Now time.Time
	// Revision is the source commit recorded in the build report, if known.
	Revision string
}

// URL joins a site-relative path onto the base URL.
func (s Site) URL(path string) string {
	return s.BaseURL + path
}

// BlogURL is the blog index page.
func (s Site) BlogURL() string { return s.URL("/blog/") }

// FeedURL is the RSS feed location.
func (s Site) FeedURL() string { return s.URL("/blog/rss.xml") }

// SitemapURL is the sitemap location.
func (s Site) SitemapURL() string { return s.URL("/sitemap.xml") }

func (s Site) language() string {
	if s.Language == "" {
		return "en-gb"
	}
	return s.Language
}
