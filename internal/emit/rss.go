package emit

import (
	"strings"

	"github.com/wayfarer-games/sitegen/internal/content"
)

// RSS renders an RSS 2.0 feed with one item per post, in collection order.
//
// lastBuildDate is the publication date of the first post, which is empty when that
// post is undated. With no posts it falls back to site.Now.
func RSS(posts []content.Post, site Site) string {
	lastBuild := content.FormatPubDate(site.Now)
	if len(posts) > 0 {
		lastBuild = content.PubDate(posts[0].Date)
	}

	lines := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`,
		"  <channel>",
		"    <title>" + XMLEscape(site.Title) + "</title>",
		"    <description>" + XMLEscape(site.Description) + "</description>",
		"    <link>" + XMLEscape(site.BlogURL()) + "</link>",
		`    <atom:link href="` + XMLEscape(site.FeedURL()) + `" rel="self" type="application/rss+xml" />`,
		"    <language>" + XMLEscape(site.language()) + "</language>",
		"    <lastBuildDate>" + XMLEscape(lastBuild) + "</lastBuildDate>",
	}

	for _, post := range posts {
		lines = append(lines,
			"    <item>",
			"      <title>"+XMLEscape(post.Title)+"</title>",
			"      <link>"+XMLEscape(post.URL)+"</link>",
			"      <guid>"+XMLEscape(post.URL)+"</guid>",
			"      <description>"+XMLEscape(post.Summary)+"</description>",
		)
		if pub := content.PubDate(post.Date); pub != "" {
			lines = append(lines, "      <pubDate>"+XMLEscape(pub)+"</pubDate>")
		}
		lines = append(lines, "    </item>")
	}

	lines = append(lines, "  </channel>", "</rss>", "")
	return strings.Join(lines, "\n")
}
