package docsnav

import (
	"net/url"
	"regexp"
	"strings"
)

var repeatedSlashRe = regexp.MustCompile(`/{2,}`)

// NormalizePath reduces a path or absolute http(s) URL to its path component, drops any
// fragment and guarantees a trailing slash. Empty input is "/".
func NormalizePath(value string) string {
	if value == "" {
		return "/"
	}
	path := value
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if u, err := url.Parse(path); err == nil {
			path = u.Path
		}
	}
	path, _, _ = strings.Cut(path, "#")
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// DocsRoot resolves basePath against the page path and returns it with a trailing slash.
// An absolute basePath ignores pagePath.
func DocsRoot(basePath, pagePath string) string {
	page, err := url.Parse(pagePath)
	if err != nil || pagePath == "" {
		page = &url.URL{Path: "/"}
	}
	ref, err := url.Parse(strings.TrimRight(basePath, "/") + "/")
	if err != nil {
		return "/"
	}
	root := page.ResolveReference(ref).Path
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}

// BuildHref joins a target onto the docs root, collapsing repeated slashes in the path
// and keeping any fragment.
func BuildHref(docsRoot, target string) string {
	pathPart, hashPart, _ := strings.Cut(target, "#")
	path := repeatedSlashRe.ReplaceAllString(docsRoot+strings.TrimLeft(pathPart, "/"), "/")
	if hashPart == "" {
		return path
	}
	return path + "#" + hashPart
}

func isCurrentPath(linkPath, currentPath string) bool {
	return NormalizePath(linkPath) == NormalizePath(currentPath)
}

// IsCurrentGroup reports whether the group's own link or any child link points at the
// current page, ignoring fragments.
func IsCurrentGroup(g Group, docsRoot, currentPath string) bool {
	if g.Href != "" && isCurrentPath(BuildHref(docsRoot, g.Href), currentPath) {
		return true
	}
	for _, child := range g.Children {
		if isCurrentPath(BuildHref(docsRoot, child.Href), currentPath) {
			return true
		}
	}
	return false
}

// IsCurrentLink reports whether fullHref is the active link. A link without a fragment is
// active on its page; a link with one also needs currentHash ("#frag") to match.
func IsCurrentLink(fullHref, currentPath, currentHash string) bool {
	linkPath, linkHash, _ := strings.Cut(fullHref, "#")
	if !isCurrentPath(linkPath, currentPath) {
		return false
	}
	if linkHash == "" {
		return true
	}
	return "#"+linkHash == currentHash
}
