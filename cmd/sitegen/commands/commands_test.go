package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-games/sitegen/internal/config"
	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
)

// run parses args and executes the selected command from inside dir.
func run(t *testing.T, dir string, args ...string) error {
	t.Helper()
	t.Chdir(dir)
	t.Setenv(config.EnvSiteURL, "")
	require.NoError(t, os.Unsetenv(config.EnvSiteURL))

	var cli CLI
	global := &Global{}
	parser, err := kong.New(&cli,
		kong.Name("sitegen"),
		kong.Vars{"version": "test"},
		kong.Bind(global),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx.Run(global, &cli)
}

func writeSite(t *testing.T, dir string) {
	t.Helper()
	posts := filepath.Join(dir, "public", "blog", "posts")
	require.NoError(t, os.MkdirAll(posts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public", "blog", "index.html"), []byte("<p>blog</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(posts, "posts.json"), []byte(`[{"file":"hello.md"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(posts, "hello.md"), []byte("# Hello\nWorld"), 0o644))
}

func TestBuildAndVerify(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir)

	require.NoError(t, run(t, dir, "build", "--verify"))

	for _, p := range []string{"public/blog/rss.xml", "public/sitemap.xml", "public/robots.txt", "public/blog/hello/index.html", "public/blog/posts/report.json"} {
		assert.FileExists(t, filepath.Join(dir, p))
	}
	require.NoError(t, run(t, dir, "verify"))
}

func TestBuildIsDefaultCommand(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir)

	require.NoError(t, run(t, dir))
	assert.FileExists(t, filepath.Join(dir, "public", "robots.txt"))
}

func TestBuild_BaseURLFlag(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir)

	require.NoError(t, run(t, dir, "build", "--base-url", "https://staging.example.com/"))
	robots, err := os.ReadFile(filepath.Join(dir, "public", "robots.txt"))
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nAllow: /\nSitemap: https://staging.example.com/sitemap.xml\n", string(robots))
}

func TestBuild_MissingManifest(t *testing.T) {
	err := run(t, t.TempDir(), "build")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	assert.Equal(t, 11, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestInitThenLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "init"))
	assert.FileExists(t, filepath.Join(dir, DefaultConfigFile))

	err := run(t, dir, "init")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	require.NoError(t, run(t, dir, "init", "--force"))
}

func TestNav(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(site, 0o755))
	page := `<html><body><div id="toc-collapse"><ul class="nav flex-column"></ul></div></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte(page), 0o644))

	require.NoError(t, run(t, dir, "nav", "--site-dir", site, "--base-path", "/docs"))
	out, err := os.ReadFile(filepath.Join(site, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `<a href="/docs/" class="nav-link active" aria-current="page">Intro</a>`)
}

func TestVerify_FailsOnBrokenSite(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir)
	require.NoError(t, run(t, dir, "build"))
	require.NoError(t, os.Remove(filepath.Join(dir, "public", "blog", "hello", "index.html")))

	err := run(t, dir, "verify")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
