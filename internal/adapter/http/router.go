package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

// NewRouter wires every handler of the counter screen.
func NewRouter(surface interfaces.SurfaceService, images *ImageHandler, logger logger.Logger) (http.Handler, error) {
	page, err := NewPageHandler(surface, logger)
	if err != nil {
		return nil, err
	}
	actions := NewActionHandler(surface, logger)
	exports := NewExportHandler(surface, page, logger)
	api := NewAPIHandler(surface, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", page.Index)
	r.Get("/images/{name}", images.Serve)

	actions.RegisterRoutes(r)
	exports.RegisterRoutes(r)
	r.Route("/api", api.RegisterRoutes)

	return r, nil
}
