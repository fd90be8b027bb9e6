package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/app/surface"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

// ActionHandler serves the page's form posts. Every action redirects back
// to the page with the search query intact.
type ActionHandler struct {
	surface interfaces.SurfaceService
	logger  logger.Logger
}

func NewActionHandler(surface interfaces.SurfaceService, logger logger.Logger) *ActionHandler {
	return &ActionHandler{
		surface: surface,
		logger:  logger,
	}
}

func (h *ActionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/items/{id}/increment", h.itemAction(h.surface.Increment))
	r.Post("/items/{id}/decrement", h.itemAction(h.surface.Decrement))
	r.Post("/items/{id}/reset", h.itemAction(h.surface.ResetItem))

	r.Post("/day/reset", h.ResetDay)
	r.Post("/summary/open", h.OpenSummary)
	r.Post("/summary/close", h.CloseSummary)
	r.Post("/theme/toggle", h.ToggleTheme)
}

func (h *ActionHandler) itemAction(fn func(id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := fn(id); err != nil {
			if errors.Is(err, domain.ErrUnknownItem) {
				http.Error(w, "Unknown item", http.StatusNotFound)
				return
			}
			h.logger.Error("item_action_failed", "Failed to update item", requestID(r), map[string]interface{}{
				"item_id": id,
			}, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		redirectBack(w, r)
	}
}

func (h *ActionHandler) ResetDay(w http.ResponseWriter, r *http.Request) {
	err := h.surface.ResetDay(r.Context(), confirmed(r))
	if err != nil && !errors.Is(err, surface.ErrNotConfirmed) {
		h.logger.Error("day_reset_failed", "Failed to reset day", requestID(r), nil, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	redirectBack(w, r)
}

func (h *ActionHandler) OpenSummary(w http.ResponseWriter, r *http.Request) {
	h.surface.OpenSummary()
	redirectBack(w, r)
}

func (h *ActionHandler) CloseSummary(w http.ResponseWriter, r *http.Request) {
	h.surface.CloseSummary()
	redirectBack(w, r)
}

func (h *ActionHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.surface.ToggleTheme(r.Context())
	redirectBack(w, r)
}

func confirmed(r *http.Request) bool {
	return r.FormValue("confirm") == "yes"
}

func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if q := r.FormValue("q"); q != "" {
		target += "?" + url.Values{"q": {q}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
