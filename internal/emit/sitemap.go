package emit

import (
	"strings"

	"github.com/wayfarer-games/sitegen/internal/content"
)

// Sitemap renders a sitemaps.org urlset: the static pages followed by every post URL,
// each listed once at its first position.
func Sitemap(posts []content.Post, site Site) string {
	urls := make([]string, 0, len(site.StaticPaths)+len(posts))
	for _, p := range site.StaticPaths {
		urls = append(urls, site.URL(p))
	}
	for _, post := range posts {
		urls = append(urls, post.URL)
	}

	lines := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
	}
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		lines = append(lines, "  <url>", "    <loc>"+XMLEscape(u)+"</loc>", "  </url>")
	}
	lines = append(lines, "</urlset>", "")
	return strings.Join(lines, "\n")
}

// Robots renders robots.txt allowing every crawler and pointing at the sitemap.
func Robots(site Site) string {
	return strings.Join([]string{
		"User-agent: *",
		"Allow: /",
		"Sitemap: " + site.SitemapURL(),
		"",
	}, "\n")
}
