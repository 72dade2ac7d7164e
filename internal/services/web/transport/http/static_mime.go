// Package http holds transport helpers for serving embedded assets.
package http

import (
	"net/http"
	"path"
	"strings"
)

var staticContentTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "text/javascript; charset=utf-8",
}

// WithStaticMime pins the content type of stylesheet and script assets so
// they are served correctly under X-Content-Type-Options: nosniff.
func WithStaticMime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType, ok := staticContentTypes[strings.ToLower(path.Ext(r.URL.Path))]; ok {
			w.Header().Set("Content-Type", contentType)
		}
		next.ServeHTTP(w, r)
	})
}
