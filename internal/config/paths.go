package config

import (
	"path/filepath"
	"slices"
	"strings"
)

// PublicDir returns the root output directory.
func (c *Config) PublicDir() string { return filepath.Clean(c.Paths.PublicDir) }

// BlogDir returns the directory receiving rss.xml and the per-post page directories.
func (c *Config) BlogDir() string { return filepath.Join(c.Paths.PublicDir, c.Paths.BlogDir) }

// PostsDir returns the directory holding the manifest and post sources.
func (c *Config) PostsDir() string { return filepath.Join(c.Paths.PublicDir, c.Paths.PostsDir) }

// ManifestPath returns the manifest location.
func (c *Config) ManifestPath() string { return filepath.Join(c.PostsDir(), c.Paths.Manifest) }

// RSSPath returns the feed output location.
func (c *Config) RSSPath() string { return filepath.Join(c.BlogDir(), "rss.xml") }

// SitemapPath returns the sitemap output location.
func (c *Config) SitemapPath() string { return filepath.Join(c.Paths.PublicDir, "sitemap.xml") }

// RobotsPath returns the robots.txt output location.
func (c *Config) RobotsPath() string { return filepath.Join(c.Paths.PublicDir, "robots.txt") }

// ReportPath returns the build report output location.
func (c *Config) ReportPath() string { return filepath.Join(c.PostsDir(), "report.json") }

// PostPagePath returns the index.html location for a post slug.
func (c *Config) PostPagePath(slug string) string {
	return filepath.Join(c.Paths.PublicDir, filepath.FromSlash(c.Site.PostPath), slug, "index.html")
}

// ReservedSlugs returns the names in the post page directory that the build itself
// writes or reads, such as rss.xml or the posts source directory. A post with one of
// these slugs would overwrite pipeline files.
func (c *Config) ReservedSlugs() []string {
	pageDir := filepath.Join(c.Paths.PublicDir, filepath.FromSlash(c.Site.PostPath))
	var reserved []string
	for _, p := range []string{c.RSSPath(), c.PostsDir(), c.SitemapPath(), c.RobotsPath()} {
		rel, err := filepath.Rel(pageDir, p)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		name, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
		if name = strings.ToLower(name); !slices.Contains(reserved, name) {
			reserved = append(reserved, name)
		}
	}
	return reserved
}
