package emit

import (
	"encoding/json"
	"strings"

	"github.com/wayfarer-games/sitegen/internal/content"
)

type jsonLDOrganization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type jsonLDPosting struct {
	Context          string             `json:"@context"`
	Type             string             `json:"@type"`
	Headline         string             `json:"headline"`
	Description      string             `json:"description"`
	URL              string             `json:"url"`
	MainEntityOfPage string             `json:"mainEntityOfPage"`
	DatePublished    string             `json:"datePublished,omitempty"`
	Publisher        jsonLDOrganization `json:"publisher"`
}

// StructuredData returns the schema.org BlogPosting JSON-LD for post. The encoding
// escapes <, > and & so the result is safe inside a script element.
func StructuredData(post content.Post, site Site) (string, error) {
	data, err := json.Marshal(jsonLDPosting{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         post.Title,
		Description:      post.Summary,
		URL:              post.URL,
		MainEntityOfPage: post.URL,
		DatePublished:    content.ISODate(post.Date),
		Publisher: jsonLDOrganization{
			Type: "Organization",
			Name: site.Title,
			URL:  site.URL("/"),
		},
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PostPage renders the standalone HTML page for one post. post.HTML is inserted as-is;
// every other value is escaped.
func PostPage(post content.Post, site Site) (string, error) {
	ld, err := StructuredData(post, site)
	if err != nil {
		return "", err
	}

	title := HTMLEscape(post.Title)
	summary := HTMLEscape(post.Summary)
	url := HTMLEscape(post.URL)
	siteTitle := HTMLEscape(site.Title)
	iso := content.ISODate(post.Date)

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line("<!doctype html>")
	line(`<html lang="` + HTMLEscape(site.language()) + `">`)
	line("  <head>")
	line(`    <meta charset="utf-8" />`)
	line(`    <meta name="viewport" content="width=device-width, initial-scale=1" />`)
	line("    <title>" + title + " | " + siteTitle + "</title>")
	line(`    <meta name="description" content="` + summary + `" />`)
	line(`    <link rel="canonical" href="` + url + `" />`)
	line(`    <link rel="alternate" type="application/rss+xml" title="` + siteTitle + `" href="` + HTMLEscape(site.FeedURL()) + `" />`)
	line(`    <meta property="og:type" content="article" />`)
	line(`    <meta property="og:site_name" content="` + siteTitle + `" />`)
	line(`    <meta property="og:title" content="` + title + `" />`)
	line(`    <meta property="og:description" content="` + summary + `" />`)
	line(`    <meta property="og:url" content="` + url + `" />`)
	if iso != "" {
		line(`    <meta property="article:published_time" content="` + HTMLEscape(iso) + `" />`)
	}
	line(`    <meta name="twitter:card" content="summary" />`)
	line(`    <meta name="twitter:title" content="` + title + `" />`)
	line(`    <meta name="twitter:description" content="` + summary + `" />`)
	line(`    <script type="application/ld+json">` + ld + `</script>`)
	line("  </head>")
	line("  <body>")
	line(`    <main class="blog-post">`)
	line("      <article>")
	line(`        <p class="blog-post-back"><a href="` + HTMLEscape(site.BlogURL()) + `">All posts</a></p>`)
	if iso != "" {
		line(`        <time datetime="` + HTMLEscape(iso) + `">` + HTMLEscape(post.Date) + "</time>")
	}
	b.WriteString(post.HTML)
	if !strings.HasSuffix(post.HTML, "\n") {
		b.WriteByte('\n')
	}
	line("      </article>")
	line("    </main>")
	line("  </body>")
	line("</html>")
	return b.String(), nil
}
