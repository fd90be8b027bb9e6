package http

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
)

const placeholderSVG = `<svg xmlns='http://www.w3.org/2000/svg' width='400' height='300' viewBox='0 0 400 300'>
  <rect width='100%' height='100%' fill='#eeeeee'/>
  <text x='50%' y='50%' dominant-baseline='middle' text-anchor='middle' fill='#999' font-size='20'>No image</text>
</svg>`

// PlaceholderDataURI is swapped in by the page when an image fails in the browser.
var PlaceholderDataURI = "data:image/svg+xml;utf8," + url.PathEscape(placeholderSVG)

// ImageHandler serves item images from a directory. A missing or unreadable
// image gets the placeholder, and each failing path is logged only once.
type ImageHandler struct {
	dir    string
	logger logger.Logger
	warned sync.Map
}

func NewImageHandler(dir string, logger logger.Logger) *ImageHandler {
	return &ImageHandler{
		dir:    dir,
		logger: logger,
	}
}

func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := path.Base("/" + chi.URLParam(r, "name"))
	full := filepath.Join(h.dir, filepath.FromSlash(name))

	f, err := os.Open(full)
	if err == nil {
		defer f.Close()
		var info os.FileInfo
		if info, err = f.Stat(); err == nil && !info.IsDir() {
			w.Header().Set("Cache-Control", "public, max-age=86400")
			http.ServeContent(w, r, name, info.ModTime(), f)
			return
		}
		if err == nil {
			err = os.ErrNotExist
		}
	}

	if _, seen := h.warned.LoadOrStore(name, struct{}{}); !seen {
		h.logger.Warn("image_fallback", "Image failed, using placeholder", requestID(r), map[string]interface{}{
			"image": "/images/" + name,
			"error": err.Error(),
		})
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(placeholderSVG))
}
