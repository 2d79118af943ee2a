package docsnav

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func linkNode(l Link, docsRoot, currentPath, currentHash string) *html.Node {
	href := BuildHref(docsRoot, l.Href)
	current := IsCurrentLink(href, currentPath, currentHash)

	class := "nav-link"
	if current {
		class += " active"
	}
	a := &html.Node{Type: html.ElementNode, DataAtom: atom.A, Data: "a", Attr: []html.Attribute{
		{Key: "href", Val: href},
		{Key: "class", Val: class},
	}}
	if current {
		a.Attr = append(a.Attr, html.Attribute{Key: "aria-current", Val: "page"})
	}
	a.AppendChild(text(l.Label))
	return a
}

// Render builds the sidebar list for groups as seen from currentPath. currentHash is the
// page fragment including "#", or "" when unknown.
func Render(groups []Group, docsRoot, currentPath, currentHash string) *html.Node {
	wrapper := element(atom.Ul, "nav flex-column docs-global-nav")

	for _, g := range groups {
		item := element(atom.Li, "nav-item docs-global-item")
		wrapper.AppendChild(item)

		if g.Href != "" {
			item.AppendChild(linkNode(Link{Label: g.Title, Href: g.Href}, docsRoot, currentPath, currentHash))
			continue
		}

		details := element(atom.Details, "docs-nav-group")
		if IsCurrentGroup(g, docsRoot, currentPath) {
			details.Attr = append(details.Attr, html.Attribute{Key: "open"})
		}
		summary := element(atom.Summary, "docs-nav-summary")
		summary.AppendChild(text(g.Title))
		details.AppendChild(summary)

		list := element(atom.Ul, "nav flex-column docs-sub-nav")
		for _, child := range g.Children {
			li := element(atom.Li, "nav-item docs-sub-item")
			li.AppendChild(linkNode(child, docsRoot, currentPath, currentHash))
			list.AppendChild(li)
		}
		details.AppendChild(list)
		item.AppendChild(details)
	}
	return wrapper
}

// RenderString renders the sidebar as an HTML fragment.
func RenderString(groups []Group, docsRoot, currentPath, currentHash string) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, Render(groups, docsRoot, currentPath, currentHash)); err != nil {
		return "", err
	}
	return b.String(), nil
}
