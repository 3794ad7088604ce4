package driver

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// SPAHandler serves the web player from an embedded filesystem. Static files
// are served when they exist; every other path falls back to index.html so
// client-side routing keeps working after a page reload.
type SPAHandler struct {
	fileSystem fs.FS
	fileServer http.Handler
}

// NewSPAHandler creates a new handler that serves the web player from the given filesystem.
func NewSPAHandler(fsys fs.FS) *SPAHandler {
	return &SPAHandler{
		fileSystem: fsys,
		fileServer: http.FileServerFS(fsys),
	}
}

// ServeHTTP serves a static file if it exists, otherwise serves index.html.
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cleanPath := path.Clean(r.URL.Path)
	if cleanPath == "/" {
		cleanPath = "/index.html"
	}

	f, err := h.fileSystem.Open(strings.TrimPrefix(cleanPath, "/"))
	if err != nil {
		// Unknown path, hand it to the client router
		r.URL.Path = "/"
		h.setCacheHeaders(w, "/index.html")
		h.fileServer.ServeHTTP(w, r)
		return
	}
	f.Close()

	h.setCacheHeaders(w, cleanPath)
	h.fileServer.ServeHTTP(w, r)
}

// setCacheHeaders sets cache headers based on the file path. Hashed build
// assets under /assets/ are immutable; index.html must always be revalidated.
func (h *SPAHandler) setCacheHeaders(w http.ResponseWriter, filePath string) {
	if strings.HasPrefix(filePath, "/assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else if filePath == "/index.html" {
		w.Header().Set("Cache-Control", "no-cache")
	}
}
