// Package content turns manifest descriptors and their source text into resolved posts
// and orders the resulting collection.
package content

import (
	"regexp"
	"strings"

	"github.com/inful/mdfp"

	"github.com/wayfarer-games/sitegen/internal/frontmatter"
	"github.com/wayfarer-games/sitegen/internal/manifest"
	"github.com/wayfarer-games/sitegen/internal/markdown"
)

// SummaryLimit caps summaries derived from the body, in runes.
const SummaryLimit = 280

// Post is a fully resolved blog post.
type Post struct {
	File        string
	Title       string
	Summary     string
	Date        string
	Slug        string
	URL         string
	HTML        string
	Fingerprint string
}

// Source is everything a field resolver may consult.
type Source struct {
	Descriptor manifest.Descriptor
	Document   frontmatter.Document
}

var sourceExtRe = regexp.MustCompile(`(?i)\.(md|markdown|txt)$`)

// StripSourceExt removes a trailing .md, .markdown or .txt extension, case-insensitively.
func StripSourceExt(name string) string {
	return sourceExtRe.ReplaceAllString(name, "")
}

// Slug derives the URL slug from a manifest file name.
func Slug(file string) string {
	return strings.ToLower(strings.TrimSpace(StripSourceExt(file)))
}

// Fingerprint returns the content fingerprint of a parsed source.
func Fingerprint(doc frontmatter.Document) string {
	return mdfp.CalculateFingerprintFromParts(doc.Block, doc.Body)
}

// Resolver builds posts from descriptors using ordered per-field resolver chains.
type Resolver struct {
	baseURL  string
	postPath string
	renderer *markdown.Renderer

	Title   Chain
	Summary Chain
	Date    Chain
}

// NewResolver returns a resolver with the standard chains. baseURL must not end in a
// slash; postPath must start and end with one.
func NewResolver(baseURL, postPath string, renderer *markdown.Renderer) *Resolver {
	if renderer == nil {
		renderer = markdown.NewRenderer()
	}
	return &Resolver{
		baseURL:  baseURL,
		postPath: postPath,
		renderer: renderer,
		Title:    TitleChain(),
		Summary:  SummaryChain(),
		Date:     DateChain(),
	}
}

// URL returns the absolute URL of the post page for slug.
func (r *Resolver) URL(slug string) string {
	return r.baseURL + r.postPath + slug + "/"
}

// Resolve builds the post for d from its raw source text.
func (r *Resolver) Resolve(d manifest.Descriptor, raw string) (Post, error) {
	src := Source{Descriptor: d, Document: frontmatter.Parse(raw)}

	html, err := r.renderer.Render(src.Document.Body)
	if err != nil {
		return Post{}, err
	}

	slug := Slug(d.File)
	return Post{
		File:        d.File,
		Title:       r.Title.Resolve(src),
		Summary:     r.Summary.Resolve(src),
		Date:        r.Date.Resolve(src),
		Slug:        slug,
		URL:         r.URL(slug),
		HTML:        html,
		Fingerprint: Fingerprint(src.Document),
	}, nil
}
