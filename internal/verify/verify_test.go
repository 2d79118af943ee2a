package verify

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-games/sitegen/internal/config"
	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/pipeline"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildSite(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.PublicDir = filepath.Join(t.TempDir(), "public")
	require.NoError(t, os.MkdirAll(cfg.PostsDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.BlogDir(), "index.html"), []byte("<p>index</p>"), 0o644))

	names := make([]string, 0, len(files))
	for name, body := range files {
		names = append(names, `"`+name+`"`)
		require.NoError(t, os.WriteFile(filepath.Join(cfg.PostsDir(), name), []byte(body), 0o644))
	}
	require.NoError(t, os.WriteFile(cfg.ManifestPath(), []byte("["+strings.Join(names, ",")+"]"), 0o644))

	_, err := pipeline.Run(context.Background(), cfg, pipeline.Options{Logger: discardLogger()})
	require.NoError(t, err)
	return cfg
}

func TestSite_CleanBuildPasses(t *testing.T) {
	cfg := buildSite(t, map[string]string{
		"a.md": "# A\nSee [b](/blog/b/) and [feed](../rss.xml) and [elsewhere](https://example.org/x).",
		"b.md": "# B\n[top](#top) [mail](mailto:x@example.org)",
	})

	res, err := Site(cfg, discardLogger())
	require.NoError(t, err)
	assert.True(t, res.OK(), "%v", res.Issues)
	assert.Equal(t, 2, res.Pages)
	assert.Positive(t, res.Links)
}

func TestSite_ReportsBrokenLink(t *testing.T) {
	cfg := buildSite(t, map[string]string{
		"a.md": "# A\n[gone](/blog/missing/) [abs](https://wayfarer-games.com/nothing-here.png)",
	})

	res, err := Site(cfg, discardLogger())
	require.NoError(t, err)
	require.Len(t, res.Issues, 2)
	for _, issue := range res.Issues {
		assert.Equal(t, KindBrokenLink, issue.Kind)
	}
}

func TestSite_ReportsCanonicalMismatch(t *testing.T) {
	cfg := buildSite(t, map[string]string{"a.md": "# A\nbody"})

	page := cfg.PostPagePath("a")
	data, err := os.ReadFile(page)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `rel="canonical" href="https://wayfarer-games.com/blog/a/"`, `rel="canonical" href="https://wayfarer-games.com/blog/"`, 1)
	require.NoError(t, os.WriteFile(page, []byte(tampered), 0o644))

	res, err := Site(cfg, discardLogger())
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, KindCanonical, res.Issues[0].Kind)
}

func TestSite_ReportsMissingPage(t *testing.T) {
	cfg := buildSite(t, map[string]string{"a.md": "# A\nbody"})
	require.NoError(t, os.Remove(cfg.PostPagePath("a")))

	res, err := Site(cfg, discardLogger())
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, KindMissingPage, res.Issues[0].Kind)
}

func TestSite_MissingReportIsError(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.PublicDir = t.TempDir()

	_, err := Site(cfg, discardLogger())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage(strings.NewReader(`<html><head>
<link rel="canonical" href="https://x/a/"><meta property="og:url" content="https://x/a/">
<script src="/app.js"></script></head><body><img src="i.png"><a href="/b/">b</a></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "https://x/a/", page.Canonical)
	assert.Equal(t, "https://x/a/", page.OGURL)
	assert.Len(t, page.Links, 4)
}

func TestResolvesToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "blog", "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blog", "a", "index.html"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), nil, 0o644))

	assert.True(t, resolvesToFile(dir, "/blog/a/"))
	assert.True(t, resolvesToFile(dir, "/blog/a"))
	assert.True(t, resolvesToFile(dir, "/robots.txt"))
	assert.False(t, resolvesToFile(dir, "/blog/"))
	assert.False(t, resolvesToFile(dir, "/../etc/passwd"))
}
