package surface

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/app/export"
	"github.com/YelzhanWeb/daily-orders/internal/app/order"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

// ThemeKey stores the dark mode preference as "true" or "false".
const ThemeKey = "darkMode"

var (
	ErrNotConfirmed     = errors.New("action was not confirmed")
	ErrExportInProgress = errors.New("an export is already running")
	ErrExportFailed     = errors.New("pdf export failed")
)

// ExportFailedNotice is the one message shown to staff for any export failure.
const ExportFailedNotice = "Something went wrong while creating the PDF."

// Service is the state behind the single counter screen. IsExporting,
// ShowSummary and DarkMode are independent flags.
type Service struct {
	mu          sync.Mutex
	store       *order.Store
	exporter    *export.Service
	prefs       interfaces.KeyValueStore
	publisher   interfaces.DayClosePublisher
	logger      logger.Logger
	modalSettle time.Duration

	isExporting bool
	showSummary bool
	darkMode    bool
}

type Options struct {
	// ModalSettle is waited between closing the summary and exporting from it.
	ModalSettle time.Duration
}

func NewService(
	ctx context.Context,
	store *order.Store,
	exporter *export.Service,
	prefs interfaces.KeyValueStore,
	publisher interfaces.DayClosePublisher,
	logger logger.Logger,
	opts Options,
) *Service {
	s := &Service{
		store:       store,
		exporter:    exporter,
		prefs:       prefs,
		publisher:   publisher,
		logger:      logger,
		modalSettle: opts.ModalSettle,
	}
	s.darkMode = s.loadTheme(ctx)

	store.Subscribe(s.refreshSummary)

	return s
}

func (s *Service) View(query string) interfaces.ViewModel {
	state := s.store.Snapshot()
	rows := domain.Rows(s.store.Catalog(), state.Counts)
	filtered := domain.FilterRows(rows, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	vm := interfaces.ViewModel{
		Query:       query,
		Rows:        filtered,
		SummaryRows: rows,
		Totals:      domain.ComputeTotals(rows),
		NoResults:   len(filtered) == 0,
		IsExporting: s.isExporting,
		ShowSummary: s.showSummary,
		DarkMode:    s.darkMode,
		LastReset:   state.LastReset,
	}
	if s.showSummary {
		if node, ok := s.exporter.Document().Lookup(export.SummaryNodeID); ok {
			vm.SummaryMarkup = node.Markup
		}
	}
	return vm
}

func (s *Service) Increment(id string) error {
	_, err := s.store.Increment(id)
	return err
}

func (s *Service) Decrement(id string) error {
	_, err := s.store.Decrement(id)
	return err
}

func (s *Service) ResetItem(id string) error {
	_, err := s.store.ResetOne(id)
	return err
}

// ResetDay zeroes every count once the user has confirmed. When a publisher
// is configured the closed day is announced; publish errors never block the reset.
func (s *Service) ResetDay(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	closed, after := s.store.ResetAll()

	s.logger.Info("day_reset", "Day closed and counts reset", "", map[string]interface{}{
		"last_reset": after.LastReset,
	})

	if s.publisher != nil {
		msg := s.dayClosedMessage(closed, after.LastReset)
		if err := s.publisher.PublishDayClosed(ctx, msg); err != nil {
			s.logger.Error("rabbitmq_publish_failed", "Failed to publish day close", "", nil, err)
		}
	}

	return nil
}

func (s *Service) OpenSummary() {
	// store lock first, same order as the mutation observers
	s.store.Inspect(func(state domain.OrderState) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.showSummary = true
		s.mountSummaryLocked(state)
	})
}

func (s *Service) CloseSummary() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showSummary = false
	s.exporter.HideSummary()
}

// ToggleTheme flips dark mode and persists it. A failed write only loses
// the preference for the next start.
func (s *Service) ToggleTheme(ctx context.Context) bool {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	dark := s.darkMode
	s.mu.Unlock()

	value := "false"
	if dark {
		value = "true"
	}
	if err := s.prefs.SetItem(ctx, ThemeKey, value); err != nil {
		s.logger.Error("theme_save_failed", "Failed to persist theme", "", nil, err)
	}

	return dark
}

// ExportPDF runs one export at a time. Any failure is logged and reported
// as ErrExportFailed; the exporting flag is always cleared.
func (s *Service) ExportPDF(ctx context.Context, confirmed bool) (*interfaces.ExportFile, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	s.mu.Lock()
	if s.isExporting {
		s.mu.Unlock()
		return nil, ErrExportInProgress
	}
	s.isExporting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isExporting = false
		s.mu.Unlock()
	}()

	rows := domain.Rows(s.store.Catalog(), s.store.Snapshot().Counts)
	file, err := s.exporter.Export(ctx, rows, domain.ComputeTotals(rows))
	if err != nil {
		s.logger.Error("export_failed", "Failed to export PDF", "", nil, err)
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	s.logger.Info("export_completed", "PDF exported", "", map[string]interface{}{
		"file":  file.Name,
		"bytes": len(file.Data),
	})
	return file, nil
}

// ExportFromSummary closes the summary, lets the page settle, then exports.
func (s *Service) ExportFromSummary(ctx context.Context, confirmed bool) (*interfaces.ExportFile, error) {
	s.CloseSummary()

	if s.modalSettle > 0 {
		timer := time.NewTimer(s.modalSettle)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return s.ExportPDF(ctx, confirmed)
}

func (s *Service) ExportSpreadsheet(ctx context.Context) (*interfaces.ExportFile, error) {
	rows := domain.Rows(s.store.Catalog(), s.store.Snapshot().Counts)
	file, err := s.exporter.ExportSpreadsheet(ctx, rows, domain.ComputeTotals(rows))
	if err != nil {
		s.logger.Error("export_failed", "Failed to export spreadsheet", "", nil, err)
		return nil, err
	}
	return file, nil
}

// refreshSummary keeps the live summary node in step with the counts.
func (s *Service) refreshSummary(state domain.OrderState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.showSummary {
		s.mountSummaryLocked(state)
	}
}

func (s *Service) mountSummaryLocked(state domain.OrderState) {
	rows := domain.Rows(s.store.Catalog(), state.Counts)
	if err := s.exporter.ShowSummary(rows, domain.ComputeTotals(rows)); err != nil {
		s.logger.Error("summary_render_failed", "Failed to render summary", "", nil, err)
	}
}

func (s *Service) loadTheme(ctx context.Context) bool {
	v, ok, err := s.prefs.GetItem(ctx, ThemeKey)
	if err != nil {
		s.logger.Error("theme_load_failed", "Failed to read theme, using light mode", "", nil, err)
		return false
	}
	return ok && v == "true"
}

func (s *Service) dayClosedMessage(state domain.OrderState, closedAt time.Time) interfaces.DayClosedMessage {
	rows := domain.Rows(s.store.Catalog(), state.Counts)
	totals := domain.ComputeTotals(rows)

	msg := interfaces.DayClosedMessage{
		ClosedAt:    closedAt,
		OpenedAt:    state.LastReset,
		TotalItems:  totals.Items,
		TotalAmount: totals.Amount,
	}
	for _, row := range rows {
		if row.Quantity == 0 {
			continue
		}
		msg.Lines = append(msg.Lines, interfaces.DayClosedLine{
			ItemID:   row.ID,
			Name:     row.Name,
			Quantity: row.Quantity,
			Price:    row.Price,
			Total:    row.Total,
		})
	}
	return msg
}
