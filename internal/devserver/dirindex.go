package devserver

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DirIndex serves <root>/<path>/index.html for any non-root request path that names a
// directory containing one. Other requests, including "/", go to next.
func DirIndex(root string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if p == "" {
			p = "/"
		}
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
		if p == "/" {
			next.ServeHTTP(w, r)
			return
		}

		clean := path.Clean(p)
		index := filepath.Join(root, filepath.FromSlash(clean), "index.html")
		data, err := os.ReadFile(index)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(data)
	})
}
