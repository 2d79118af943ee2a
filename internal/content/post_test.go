package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-games/sitegen/internal/manifest"
)

const testBaseURL = "https://wayfarer-games.com"

func newTestResolver() *Resolver {
	return NewResolver(testBaseURL, "/blog/", nil)
}

func TestResolve_HelloScenario(t *testing.T) {
	post, err := newTestResolver().Resolve(manifest.Descriptor{File: "hello.md"}, "# Hello\nWorld")
	require.NoError(t, err)

	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World", post.Summary)
	assert.Equal(t, "hello", post.Slug)
	assert.Equal(t, "https://wayfarer-games.com/blog/hello/", post.URL)
	assert.Equal(t, "", post.Date)
	assert.Contains(t, post.HTML, "<h1 id=\"hello\">Hello</h1>")
	assert.NotEmpty(t, post.Fingerprint)
}

func TestResolve_TitlePriority(t *testing.T) {
	r := newTestResolver()
	withMeta := "---\ntitle: From Meta\n---\n# From Heading\nBody"

	cases := []struct {
		name string
		desc manifest.Descriptor
		raw  string
		want string
	}{
		{"override wins", manifest.Descriptor{File: "a.md", Title: "Override"}, withMeta, "Override"},
		{"meta next", manifest.Descriptor{File: "a.md"}, withMeta, "From Meta"},
		{"heading next", manifest.Descriptor{File: "a.md"}, "intro\n# From Heading\n", "From Heading"},
		{"heading extension stripped", manifest.Descriptor{File: "a.md"}, "# notes.MD\n", "notes"},
		{"file name last", manifest.Descriptor{File: "Devlog-01.Markdown"}, "no heading", "Devlog-01"},
		{"empty meta title falls through", manifest.Descriptor{File: "a.md"}, "---\ntitle:\n---\n# H\n", "H"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post, err := r.Resolve(tc.desc, tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, post.Title)
		})
	}
}

func TestResolve_SummaryPriority(t *testing.T) {
	r := newTestResolver()
	long := strings.Repeat("word ", 200)

	post, err := r.Resolve(manifest.Descriptor{File: "a.md", Summary: long}, "body")
	require.NoError(t, err)
	assert.Equal(t, long, post.Summary, "overrides are used verbatim without a length cap")

	post, err = r.Resolve(manifest.Descriptor{File: "a.md"}, "---\nsummary: "+long+"\n---\nbody")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(long), post.Summary, "front-matter summaries are not capped")

	post, err = r.Resolve(manifest.Descriptor{File: "a.md"}, long)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(post.Summary), SummaryLimit)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(long), post.Summary))
	assert.False(t, strings.HasSuffix(post.Summary, "…"))
}

func TestResolve_DatePriority(t *testing.T) {
	r := newTestResolver()

	post, err := r.Resolve(manifest.Descriptor{File: "a.md", Date: "2024-06-01"}, "---\ndate: 2023-01-01\n---\n")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", post.Date)

	post, err = r.Resolve(manifest.Descriptor{File: "a.md"}, "---\ndate: 2023-01-01\n---\n")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01", post.Date)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "hello", Slug("hello.md"))
	assert.Equal(t, "my-post", Slug("  My-Post.MARKDOWN  "))
	assert.Equal(t, "notes", Slug("Notes.txt"))
	assert.Equal(t, "archive.tar", Slug("archive.tar"))
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	r := newTestResolver()
	a, err := r.Resolve(manifest.Descriptor{File: "a.md"}, "---\ntitle: A\n---\nBody")
	require.NoError(t, err)
	b, err := r.Resolve(manifest.Descriptor{File: "a.md"}, "---\ntitle: A\n---\nBody!")
	require.NoError(t, err)
	again, err := r.Resolve(manifest.Descriptor{File: "a.md"}, "---\ntitle: A\n---\nBody")
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, a.Fingerprint, again.Fingerprint)
}

func TestChain_CustomResolvers(t *testing.T) {
	r := newTestResolver()
	r.Title = Chain{
		func(Source) string { return "" },
		MetaField("headline"),
	}

	post, err := r.Resolve(manifest.Descriptor{File: "a.md"}, "---\nheadline: Custom\n---\n# Ignored")
	require.NoError(t, err)
	assert.Equal(t, "Custom", post.Title)
}
