package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/daily-orders/internal/domain"
)

// Интерфейсы Сервисов (Business Logic)
type SurfaceService interface {
	View(query string) ViewModel
	Increment(id string) error
	Decrement(id string) error
	ResetItem(id string) error
	ResetDay(ctx context.Context, confirmed bool) error
	OpenSummary()
	CloseSummary()
	ToggleTheme(ctx context.Context) bool
	ExportPDF(ctx context.Context, confirmed bool) (*ExportFile, error)
	ExportFromSummary(ctx context.Context, confirmed bool) (*ExportFile, error)
	ExportSpreadsheet(ctx context.Context) (*ExportFile, error)
}

// ViewModel is everything the page needs to render one frame.
// Rows is filtered by Query; SummaryRows and Totals never are.
type ViewModel struct {
	Query       string
	Rows        []domain.DisplayRow
	SummaryRows []domain.DisplayRow
	Totals      domain.Totals
	NoResults   bool
	IsExporting bool
	ShowSummary bool
	DarkMode    bool
	LastReset   time.Time

	// SummaryMarkup is the mounted summary table, the same node an export
	// captures. Empty while the summary is closed.
	SummaryMarkup string
}

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
