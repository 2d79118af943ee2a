// Package verify checks a built site: every post listed in the build report must have a
// page whose canonical and og:url match the post URL, and whose same-site links resolve
// to files in the output tree.
package verify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/wayfarer-games/sitegen/internal/config"
	"github.com/wayfarer-games/sitegen/internal/emit"
	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/logfields"
)

// Issue kinds.
const (
	KindMissingAsset = "missing_asset"
	KindMissingPage  = "missing_page"
	KindCanonical    = "canonical_mismatch"
	KindOGURL        = "og_url_mismatch"
	KindBrokenLink   = "broken_link"
	KindUnparsedPage = "unparsed_page"
	KindInvalidURL   = "invalid_post_url"
)

// Issue is a single verification failure.
type Issue struct {
	Kind   string
	Page   string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Kind, i.Page, i.Detail)
}

// Result summarises a verification run.
type Result struct {
	Pages  int
	Links  int
	Issues []Issue
}

// OK reports whether no issues were found.
func (r *Result) OK() bool { return len(r.Issues) == 0 }

// Site verifies the output tree described by cfg. Problems in the site are returned as
// Issues; the error is reserved for being unable to verify at all.
func Site(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := url.Parse(cfg.Site.BaseURL)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid base URL").
			WithContext("base_url", cfg.Site.BaseURL).
			Build()
	}

	data, err := os.ReadFile(cfg.ReportPath())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read build report").
			WithContext("path", cfg.ReportPath()).
			Build()
	}
	var report emit.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "build report is not valid JSON").
			WithContext("path", cfg.ReportPath()).
			Build()
	}

	res := &Result{}
	for _, asset := range []string{cfg.RSSPath(), cfg.SitemapPath(), cfg.RobotsPath()} {
		if !fileExists(asset) {
			res.Issues = append(res.Issues, Issue{Kind: KindMissingAsset, Page: asset, Detail: "not written"})
		}
	}

	for _, entry := range report.Posts {
		verifyPost(cfg, base, entry, res)
	}

	for _, issue := range res.Issues {
		logger.Warn("Verification issue", slog.String("kind", issue.Kind), logfields.Path(issue.Page), slog.String("detail", issue.Detail))
	}
	logger.Info("Verified site", logfields.Count(res.Pages), slog.Int("links", res.Links), slog.Int("issues", len(res.Issues)))
	return res, nil
}

func verifyPost(cfg *config.Config, base *url.URL, entry emit.ReportEntry, res *Result) {
	pagePath := cfg.PostPagePath(entry.Slug)
	data, err := os.ReadFile(pagePath)
	if err != nil {
		res.Issues = append(res.Issues, Issue{Kind: KindMissingPage, Page: pagePath, Detail: err.Error()})
		return
	}
	page, err := ParsePage(bytes.NewReader(data))
	if err != nil {
		res.Issues = append(res.Issues, Issue{Kind: KindUnparsedPage, Page: pagePath, Detail: err.Error()})
		return
	}
	res.Pages++

	if page.Canonical != entry.URL {
		res.Issues = append(res.Issues, Issue{Kind: KindCanonical, Page: pagePath, Detail: fmt.Sprintf("got %q, want %q", page.Canonical, entry.URL)})
	}
	if page.OGURL != entry.URL {
		res.Issues = append(res.Issues, Issue{Kind: KindOGURL, Page: pagePath, Detail: fmt.Sprintf("got %q, want %q", page.OGURL, entry.URL)})
	}

	pageURL, err := url.Parse(entry.URL)
	if err != nil {
		res.Issues = append(res.Issues, Issue{Kind: KindInvalidURL, Page: pagePath, Detail: err.Error()})
		return
	}
	for _, link := range page.Links {
		if !shouldVerify(link.URL) {
			continue
		}
		urlPath, ok := resolveSameSite(link.URL, pageURL, base)
		if !ok {
			continue
		}
		res.Links++
		if !resolvesToFile(cfg.PublicDir(), urlPath) {
			res.Issues = append(res.Issues, Issue{Kind: KindBrokenLink, Page: pagePath, Detail: link.URL})
		}
	}
}

// resolvesToFile maps a URL path onto the output tree the way the dev server and static
// hosts do: directories serve their index.html.
func resolvesToFile(publicDir, urlPath string) bool {
	clean := path.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	target := filepath.Join(publicDir, filepath.FromSlash(clean))
	if strings.HasSuffix(urlPath, "/") {
		return fileExists(filepath.Join(target, "index.html"))
	}
	return fileExists(target) || fileExists(filepath.Join(target, "index.html"))
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
