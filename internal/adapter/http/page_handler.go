package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

//go:embed templates/*.html
var templatesFS embed.FS

type PageHandler struct {
	surface interfaces.SurfaceService
	tmpl    *template.Template
	logger  logger.Logger
}

type pageData struct {
	interfaces.ViewModel
	Notice      string
	Placeholder string
	// SummaryTable comes from html/template in the export package.
	SummaryTable template.HTML
}

func NewPageHandler(surface interfaces.SurfaceService, logger logger.Logger) (*PageHandler, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"currency": domain.FormatCurrency,
	}).ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		surface: surface,
		tmpl:    tmpl,
		logger:  logger,
	}, nil
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "")
}

// render buffers the whole page before the status line is written.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, notice string) {
	vm := h.surface.View(r.URL.Query().Get("q"))
	data := pageData{
		ViewModel:    vm,
		Notice:       notice,
		Placeholder:  PlaceholderDataURI,
		SummaryTable: template.HTML(vm.SummaryMarkup),
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("render_failed", "Failed to render page", requestID(r), nil, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
