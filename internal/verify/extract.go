package verify

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
)

// Link is a URL-bearing attribute found in a page.
type Link struct {
	URL       string
	Tag       string
	Attribute string
}

// Page holds what verification needs from one parsed post page.
type Page struct {
	Canonical string
	OGURL     string
	Links     []Link
}

// ParsePage extracts the canonical URL, og:url and every linked resource from an HTML page.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	page := &Page{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			extractElement(n, page)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return page, nil
}

func extractElement(n *html.Node, page *Page) {
	switch n.Data {
	case "a":
		addLink(page, n, "href")
	case "link":
		if getAttr(n, "rel") == "canonical" && page.Canonical == "" {
			page.Canonical = getAttr(n, "href")
		}
		addLink(page, n, "href")
	case "meta":
		if getAttr(n, "property") == "og:url" && page.OGURL == "" {
			page.OGURL = getAttr(n, "content")
		}
	case "img", "script", "source", "video", "audio", "iframe":
		addLink(page, n, "src")
	}
}

func addLink(page *Page, n *html.Node, attr string) {
	if v := getAttr(n, attr); v != "" {
		page.Links = append(page.Links, Link{URL: v, Tag: n.Data, Attribute: attr})
	}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// shouldVerify reports whether a link is checked against the output tree at all.
func shouldVerify(link string) bool {
	if link == "" || strings.HasPrefix(link, "#") {
		return false
	}
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(link, scheme) {
			return false
		}
	}
	return true
}

// resolveSameSite resolves link against the page URL and returns its path when it
// points at the site's own host.
func resolveSameSite(link string, pageURL, base *url.URL) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	abs := pageURL.ResolveReference(u)
	if abs.Host != base.Host || (abs.Scheme != "http" && abs.Scheme != "https") {
		return "", false
	}
	if abs.Path == "" {
		return "/", true
	}
	return abs.Path, true
}
