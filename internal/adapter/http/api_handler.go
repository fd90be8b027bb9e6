package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

type APIHandler struct {
	surface interfaces.SurfaceService
	logger  logger.Logger
}

func NewAPIHandler(surface interfaces.SurfaceService, logger logger.Logger) *APIHandler {
	return &APIHandler{
		surface: surface,
		logger:  logger,
	}
}

type ItemsResponse struct {
	Query     string              `json:"query"`
	Items     []domain.DisplayRow `json:"items"`
	Totals    domain.Totals       `json:"totals"`
	NoResults bool                `json:"no_results"`
}

type SummaryResponse struct {
	Rows            []domain.DisplayRow `json:"rows"`
	Totals          domain.Totals       `json:"totals"`
	AmountFormatted string              `json:"amount_formatted"`
	LastReset       time.Time           `json:"last_reset"`
	IsExporting     bool                `json:"is_exporting"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandler) RegisterRoutes(r chi.Router) {
	r.Get("/items", h.ListItems)
	r.Get("/summary", h.Summary)
	r.Post("/items/{id}/{action}", h.ItemAction)
}

func (h *APIHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	vm := h.surface.View(r.URL.Query().Get("q"))
	h.respond(w, http.StatusOK, ItemsResponse{
		Query:     vm.Query,
		Items:     vm.Rows,
		Totals:    vm.Totals,
		NoResults: vm.NoResults,
	})
}

func (h *APIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	vm := h.surface.View("")
	h.respond(w, http.StatusOK, SummaryResponse{
		Rows:            vm.SummaryRows,
		Totals:          vm.Totals,
		AmountFormatted: domain.FormatCurrency(vm.Totals.Amount),
		LastReset:       vm.LastReset,
		IsExporting:     vm.IsExporting,
	})
}

// ItemAction applies increment, decrement or reset and returns the updated row.
func (h *APIHandler) ItemAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fn func(string) error
	switch chi.URLParam(r, "action") {
	case "increment":
		fn = h.surface.Increment
	case "decrement":
		fn = h.surface.Decrement
	case "reset":
		fn = h.surface.ResetItem
	default:
		h.respond(w, http.StatusBadRequest, ErrorResponse{Error: "action must be one of: increment, decrement, reset"})
		return
	}

	if err := fn(id); err != nil {
		if errors.Is(err, domain.ErrUnknownItem) {
			h.respond(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("item_action_failed", "Failed to update item", requestID(r), map[string]interface{}{
			"item_id": id,
		}, err)
		h.respond(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	for _, row := range h.surface.View("").SummaryRows {
		if row.ID == id {
			h.respond(w, http.StatusOK, row)
			return
		}
	}
	h.respond(w, http.StatusNotFound, ErrorResponse{Error: "item not found"})
}

func (h *APIHandler) respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encode_failed", "Failed to encode response", "", nil, err)
	}
}
