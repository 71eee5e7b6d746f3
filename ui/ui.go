// Package ui serves the browser client for the todo API.
package ui

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// RegisterRoutes mounts the page at / and its assets under /static/.
// Requests for assets that do not exist, directories included, go to notFound.
func RegisterRoutes(r chi.Router, notFound http.HandlerFunc) {
	files := http.FileServer(http.FS(staticFS))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, staticFS, "static/index.html")
	})
	r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
		info, err := fs.Stat(staticFS, strings.TrimPrefix(r.URL.Path, "/"))
		if err != nil || info.IsDir() {
			notFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
