package docsnav

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/logfields"
)

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClasses(n *html.Node, classes ...string) bool {
	have := strings.Fields(getAttr(n, "class"))
	for _, c := range classes {
		if !slices.Contains(have, c) {
			return false
		}
	}
	return true
}

// find returns the first element in document order under n (excluding n) matching pred.
func find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && pred(c) {
			return c
		}
		if found := find(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FindContainer locates the first ".nav.flex-column" element inside "#toc-collapse".
func FindContainer(doc *html.Node) *html.Node {
	toc := find(doc, func(n *html.Node) bool { return getAttr(n, "id") == "toc-collapse" })
	if toc == nil {
		return nil
	}
	return find(toc, func(n *html.Node) bool { return hasClasses(n, "nav", "flex-column") })
}

// Inject replaces the contents of the sidebar container in page with the rendered
// navigation. It reports false, returning page unchanged, when the page has no container.
func Inject(page []byte, groups []Group, docsRoot, currentPath string) ([]byte, bool, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, false, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}
	container := FindContainer(doc)
	if container == nil {
		return page, false, nil
	}
	for c := container.FirstChild; c != nil; {
		next := c.NextSibling
		container.RemoveChild(c)
		c = next
	}
	container.AppendChild(Render(groups, docsRoot, currentPath, ""))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, false, errors.WrapError(err, errors.CategoryInternal, "failed to render HTML").Build()
	}
	return buf.Bytes(), true, nil
}

// PagePath maps a file under the built docs directory to its served URL path.
func PagePath(docsRoot, rel string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return docsRoot
	}
	return docsRoot + strings.Trim(dir, "/") + "/"
}

// InjectDir injects the navigation into every index.html under siteDir, which is served
// at basePath. It returns the number of pages rewritten.
func InjectDir(siteDir, basePath string, groups []Group, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	docsRoot := DocsRoot(basePath, "/")
	count := 0
	err := filepath.WalkDir(siteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "index.html" {
			return nil
		}
		rel, err := filepath.Rel(siteDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, ok, err := Inject(data, groups, docsRoot, PagePath(docsRoot, rel))
		if err != nil {
			return errors.WrapError(err, errors.CategoryContent, "failed to inject navigation").
				WithContext("path", path).
				Build()
		}
		if !ok {
			logger.Debug("No sidebar container", logfields.Path(path))
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return count, err
		}
		return count, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk docs site").
			WithContext("path", siteDir).
			Build()
	}
	logger.Info("Injected docs navigation", logfields.Path(siteDir), logfields.Count(count))
	return count, nil
}
