package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/app/surface"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

type ExportHandler struct {
	surface interfaces.SurfaceService
	page    *PageHandler
	logger  logger.Logger
}

func NewExportHandler(surface interfaces.SurfaceService, page *PageHandler, logger logger.Logger) *ExportHandler {
	return &ExportHandler{
		surface: surface,
		page:    page,
		logger:  logger,
	}
}

func (h *ExportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/export/pdf", h.ExportPDF)
	r.Get("/export/xlsx", h.ExportSpreadsheet)
}

func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	var (
		file *interfaces.ExportFile
		err  error
	)
	if r.FormValue("from") == "summary" {
		file, err = h.surface.ExportFromSummary(r.Context(), confirmed(r))
	} else {
		file, err = h.surface.ExportPDF(r.Context(), confirmed(r))
	}

	switch {
	case err == nil:
		writeAttachment(w, file)
	case errors.Is(err, surface.ErrNotConfirmed):
		redirectBack(w, r)
	case errors.Is(err, surface.ErrExportInProgress):
		http.Error(w, "An export is already running", http.StatusConflict)
	default:
		// the surface already logged the cause
		h.page.render(w, r, http.StatusInternalServerError, surface.ExportFailedNotice)
	}
}

func (h *ExportHandler) ExportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	file, err := h.surface.ExportSpreadsheet(r.Context())
	if err != nil {
		http.Error(w, "Failed to create spreadsheet", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, file)
}

func writeAttachment(w http.ResponseWriter, file *interfaces.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", fmt.Sprint(len(file.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
