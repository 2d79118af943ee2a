package emit

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-games/sitegen/internal/content"
)

func testSite() Site {
	return Site{
		BaseURL:     "https://wayfarer-games.com",
		Title:       "Wayfarer Games Blog",
		Description: "Devlogs and technical breakdowns from Wayfarer Games.",
		Language:    "en-gb",
		StaticPaths: []string{"/", "/blog/", "/blog/rss.xml", "/100-days-blog/", "/timer-privacy-policy/"},
		Now:         time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func testPosts() []content.Post {
	return []content.Post{
		{File: "b.md", Title: "B & Co", Summary: `Says "hi" <there>`, Date: "2024-02-01", Slug: "b", URL: "https://wayfarer-games.com/blog/b/", HTML: "<p>B</p>\n"},
		{File: "a.md", Title: "A", Summary: "First", Slug: "a", URL: "https://wayfarer-games.com/blog/a/", HTML: "<p>A</p>"},
	}
}

func TestXMLEscape_RoundTrip(t *testing.T) {
	inputs := []string{"plain", `a & b < c > d "e" 'f'`, "&amp; already", "<<>>", ""}
	for _, in := range inputs {
		var out struct {
			Text string `xml:",chardata"`
			Attr string `xml:"v,attr"`
		}
		doc := `<t v="` + XMLEscape(in) + `">` + XMLEscape(in) + `</t>`
		require.NoError(t, xml.Unmarshal([]byte(doc), &out), in)
		assert.Equal(t, in, out.Text)
		assert.Equal(t, in, out.Attr)
	}
}

func TestXMLEscape_ControlCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Esc\x1bape", "Escape"},
		{"CR\rLF", "CR\rLF"},
		{"nul\x00 and \ufffe", "nul and "},
		{"keep\ttab", "keep\ttab"},
	}
	for _, tt := range tests {
		var out struct {
			Text string `xml:",chardata"`
		}
		doc := `<t>` + XMLEscape(tt.in) + `</t>`
		require.NoError(t, xml.Unmarshal([]byte(doc), &out), tt.in)
		assert.Equal(t, tt.want, out.Text, tt.in)
	}
}

func TestRSS_ControlCharacterInTitleStaysParseable(t *testing.T) {
	posts := []content.Post{{Title: "Esc\x1bape", Summary: "Line\r\nbreak", Date: "2024-02-01", Slug: "e", URL: "https://wayfarer-games.com/blog/e/"}}
	var feed struct {
		Items []struct {
			Title       string `xml:"title"`
			Description string `xml:"description"`
		} `xml:"channel>item"`
	}
	require.NoError(t, xml.Unmarshal([]byte(RSS(posts, testSite())), &feed))
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Escape", feed.Items[0].Title)
	assert.Equal(t, "Line\r\nbreak", feed.Items[0].Description)
}

func TestHTMLEscape(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;Tom&#39;s &amp; co&lt;/a&gt;", HTMLEscape(`<a href="x">Tom's & co</a>`))
}

type rssDoc struct {
	Channel struct {
		Title         string `xml:"title"`
		Link          string `xml:"link"`
		LastBuildDate string `xml:"lastBuildDate"`
		Items         []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			GUID        string `xml:"guid"`
			Description string `xml:"description"`
			PubDate     string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestRSS(t *testing.T) {
	out := RSS(testPosts(), testSite())

	var doc rssDoc
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Wayfarer Games Blog", doc.Channel.Title)
	assert.Equal(t, "https://wayfarer-games.com/blog/", doc.Channel.Link)
	assert.Equal(t, "Thu, 01 Feb 2024 00:00:00 GMT", doc.Channel.LastBuildDate)
	require.Len(t, doc.Channel.Items, 2)

	first := doc.Channel.Items[0]
	assert.Equal(t, "B & Co", first.Title)
	assert.Equal(t, `Says "hi" <there>`, first.Description)
	assert.Equal(t, first.Link, first.GUID)
	assert.Equal(t, "Thu, 01 Feb 2024 00:00:00 GMT", first.PubDate)
	assert.Empty(t, doc.Channel.Items[1].PubDate)

	assert.Equal(t, 1, strings.Count(out, "<pubDate>"))
	assert.Contains(t, out, `<atom:link href="https://wayfarer-games.com/blog/rss.xml" rel="self" type="application/rss+xml" />`)
	assert.Contains(t, out, "    <item>\n      <title>B &amp; Co</title>\n")
	assert.True(t, strings.HasSuffix(out, "</rss>\n"))
}

func TestRSS_EmptyCollectionUsesNow(t *testing.T) {
	out := RSS(nil, testSite())

	var doc rssDoc
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Empty(t, doc.Channel.Items)
	assert.Equal(t, "Thu, 02 Jan 2025 03:04:05 GMT", doc.Channel.LastBuildDate)
}

func TestRSS_UndatedNewestPostLeavesLastBuildDateEmpty(t *testing.T) {
	posts := testPosts()
	out := RSS(posts[1:], testSite())
	assert.Contains(t, out, "<lastBuildDate></lastBuildDate>")
}

func TestSitemap(t *testing.T) {
	site := testSite()
	posts := testPosts()
	posts = append(posts, content.Post{Slug: "dup", URL: "https://wayfarer-games.com/blog/"})
	out := Sitemap(posts, site)

	var doc struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))

	locs := make([]string, 0, len(doc.URLs))
	for _, u := range doc.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, []string{
		"https://wayfarer-games.com/",
		"https://wayfarer-games.com/blog/",
		"https://wayfarer-games.com/blog/rss.xml",
		"https://wayfarer-games.com/100-days-blog/",
		"https://wayfarer-games.com/timer-privacy-policy/",
		"https://wayfarer-games.com/blog/b/",
		"https://wayfarer-games.com/blog/a/",
	}, locs)
	assert.Contains(t, out, "  <url>\n    <loc>https://wayfarer-games.com/</loc>\n  </url>\n")
	assert.True(t, strings.HasSuffix(out, "</urlset>\n"))
}

func TestSitemap_EmptyCollectionListsStaticPages(t *testing.T) {
	out := Sitemap(nil, testSite())
	assert.Equal(t, 5, strings.Count(out, "<loc>"))
}

func TestRobots(t *testing.T) {
	assert.Equal(t, "User-agent: *\nAllow: /\nSitemap: https://wayfarer-games.com/sitemap.xml\n", Robots(testSite()))
}

func TestPostPage(t *testing.T) {
	post := testPosts()[0]
	page, err := PostPage(post, testSite())
	require.NoError(t, err)

	assert.Contains(t, page, `<link rel="canonical" href="https://wayfarer-games.com/blog/b/" />`)
	assert.Contains(t, page, `<meta property="og:url" content="https://wayfarer-games.com/blog/b/" />`)
	assert.Contains(t, page, `<meta property="og:type" content="article" />`)
	assert.Contains(t, page, `<meta name="twitter:card" content="summary" />`)
	assert.Contains(t, page, `<meta property="og:title" content="B &amp; Co" />`)
	assert.Contains(t, page, `<meta name="description" content="Says &quot;hi&quot; &lt;there&gt;" />`)
	assert.Contains(t, page, `<title>B &amp; Co | Wayfarer Games Blog</title>`)
	assert.Contains(t, page, `<time datetime="2024-02-01T00:00:00Z">2024-02-01</time>`)
	assert.Contains(t, page, "<p>B</p>\n      </article>")
	assert.NotContains(t, page, `<there>`)
}

func TestPostPage_UndatedOmitsTime(t *testing.T) {
	page, err := PostPage(testPosts()[1], testSite())
	require.NoError(t, err)
	assert.NotContains(t, page, "<time")
	assert.NotContains(t, page, "article:published_time")
	assert.Contains(t, page, "<p>A</p>\n")
}

func TestStructuredData(t *testing.T) {
	ld, err := StructuredData(testPosts()[0], testSite())
	require.NoError(t, err)
	assert.NotContains(t, ld, "<")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(ld), &got))
	assert.Equal(t, "BlogPosting", got["@type"])
	assert.Equal(t, "B & Co", got["headline"])
	assert.Equal(t, `Says "hi" <there>`, got["description"])
	assert.Equal(t, "2024-02-01T00:00:00Z", got["datePublished"])
}

func TestBuildReport(t *testing.T) {
	posts := testPosts()
	posts[0].Fingerprint = "fp-b"

	out, err := BuildReport(posts, testSite())
	require.NoError(t, err)

	var r Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 2, r.Count)
	assert.Equal(t, "b", r.Posts[0].Slug)
	assert.Equal(t, "fp-b", r.Posts[0].Fingerprint)
	assert.Equal(t, "a", r.Posts[1].Slug)

	again, err := BuildReport(posts, testSite())
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestBuildReport_EmptyCollection(t *testing.T) {
	out, err := BuildReport(nil, testSite())
	require.NoError(t, err)
	assert.Contains(t, out, `"posts": []`)
	assert.NotContains(t, out, "revision")
}

func TestBuildReport_Revision(t *testing.T) {
	site := testSite()
	site.Revision = "0123456789ab"
	out, err := BuildReport(nil, site)
	require.NoError(t, err)
	assert.Contains(t, out, `"revision": "0123456789ab"`)
}
