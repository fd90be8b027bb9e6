package export

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

const (
	DefaultTitle = "Daily Order Summary"

	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Capturer rasterizes a rendered node (adapter/raster).
type Capturer interface {
	Capture(ctx context.Context, node Node) (image.Image, error)
}

// PageWriter places a raster on a single titled page (adapter/pdf).
type PageWriter interface {
	WritePage(img image.Image, title string) ([]byte, error)
}

// SheetWriter renders the summary table as a workbook (adapter/xlsx).
type SheetWriter interface {
	WriteSheet(table SummaryTable) ([]byte, error)
}

type Service struct {
	doc        *Document
	capturer   Capturer
	pages      PageWriter
	sheets     SheetWriter
	paintDelay time.Duration
	title      string
	clock      func() time.Time
	logger     logger.Logger
}

type Options struct {
	PaintDelay time.Duration
	Title      string
	Clock      func() time.Time
}

func NewService(doc *Document, capturer Capturer, pages PageWriter, sheets SheetWriter, logger logger.Logger, opts Options) *Service {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		doc:        doc,
		capturer:   capturer,
		pages:      pages,
		sheets:     sheets,
		paintDelay: opts.PaintDelay,
		title:      opts.Title,
		clock:      opts.Clock,
		logger:     logger,
	}
}

func (s *Service) Document() *Document {
	return s.doc
}

// ShowSummary mounts (or refreshes) the live summary node.
func (s *Service) ShowSummary(rows []domain.DisplayRow, totals domain.Totals) error {
	node, err := s.buildNode(SummaryNodeID, rows, totals)
	if err != nil {
		return err
	}
	s.doc.Mount(node)
	return nil
}

func (s *Service) HideSummary() {
	s.doc.Unmount(SummaryNodeID)
}

// Export captures the summary and returns it as a one-page PDF. The live
// summary node is used when mounted; otherwise an off-screen replica is
// mounted for the capture and removed on every exit path.
func (s *Service) Export(ctx context.Context, rows []domain.DisplayRow, totals domain.Totals) (*interfaces.ExportFile, error) {
	node, ok := s.doc.Lookup(SummaryNodeID)
	if !ok {
		replica, err := s.buildNode("summary-offscreen-"+uuid.NewString(), rows, totals)
		if err != nil {
			return nil, fmt.Errorf("failed to render summary: %w", err)
		}
		replica.Offscreen = true

		s.doc.Mount(replica)
		defer s.doc.Unmount(replica.ID)
		node = replica

		s.logger.Debug("export_offscreen_mounted", "Summary not open, capturing an off-screen copy", "", map[string]interface{}{
			"node_id": replica.ID,
		})
	}

	if err := s.waitForPaint(ctx); err != nil {
		return nil, err
	}

	img, err := s.capturer.Capture(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to capture summary: %w", err)
	}

	data, err := s.pages.WritePage(img, s.title)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pdf: %w", err)
	}

	return &interfaces.ExportFile{
		Name:        FileName(s.clock(), "pdf"),
		ContentType: ContentTypePDF,
		Data:        data,
	}, nil
}

func (s *Service) ExportSpreadsheet(ctx context.Context, rows []domain.DisplayRow, totals domain.Totals) (*interfaces.ExportFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.sheets.WriteSheet(BuildSummaryTable(s.title, rows, totals))
	if err != nil {
		return nil, fmt.Errorf("failed to encode spreadsheet: %w", err)
	}

	return &interfaces.ExportFile{
		Name:        FileName(s.clock(), "xlsx"),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

// FileName is daily-orders-YYYY-MM-DD.<ext> for the calendar date of now.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("daily-orders-%s.%s", now.Format("2006-01-02"), ext)
}

func (s *Service) buildNode(id string, rows []domain.DisplayRow, totals domain.Totals) (Node, error) {
	table := BuildSummaryTable(s.title, rows, totals)
	markup, err := RenderSummaryMarkup(table)
	if err != nil {
		return Node{}, err
	}
	return Node{ID: id, Table: table, Markup: markup}, nil
}

func (s *Service) waitForPaint(ctx context.Context) error {
	if s.paintDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.paintDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
