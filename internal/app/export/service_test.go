package export

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
)

type fakeCapturer struct {
	err      error
	captured []Node
	// mounted records how many nodes were mounted at capture time
	mounted int
	doc     *Document
}

func (f *fakeCapturer) Capture(ctx context.Context, node Node) (image.Image, error) {
	f.captured = append(f.captured, node)
	if f.doc != nil {
		f.mounted = f.doc.Len()
	}
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 10, 10)), nil
}

type fakePages struct {
	err   error
	title string
}

func (f *fakePages) WritePage(img image.Image, title string) ([]byte, error) {
	f.title = title
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeSheets struct {
	table SummaryTable
}

func (f *fakeSheets) WriteSheet(table SummaryTable) ([]byte, error) {
	f.table = table
	return []byte("xlsx"), nil
}

var exportDay = time.Date(2026, 10, 19, 21, 15, 0, 0, time.UTC)

func sampleRows(t *testing.T) ([]domain.DisplayRow, domain.Totals) {
	t.Helper()
	c, err := domain.NewCatalog([]domain.MenuItem{
		{ID: "a", Name: "Dosai", Price: 30},
		{ID: "b", Name: "Pongal", Price: 40},
	})
	require.NoError(t, err)
	rows := domain.Rows(c, map[string]int{"a": 2, "b": 1})
	return rows, domain.ComputeTotals(rows)
}

func newTestService(capturer *fakeCapturer, pages *fakePages, sheets *fakeSheets) *Service {
	doc := NewDocument()
	capturer.doc = doc
	return NewService(doc, capturer, pages, sheets, logger.Nop(), Options{
		Clock: func() time.Time { return exportDay },
	})
}

func TestExportUsesOffscreenReplicaAndCleansUp(t *testing.T) {
	capturer := &fakeCapturer{}
	pages := &fakePages{}
	svc := newTestService(capturer, pages, &fakeSheets{})
	rows, totals := sampleRows(t)

	file, err := svc.Export(context.Background(), rows, totals)
	require.NoError(t, err)

	assert.Equal(t, "daily-orders-2026-10-19.pdf", file.Name)
	assert.Equal(t, ContentTypePDF, file.ContentType)
	assert.Equal(t, DefaultTitle, pages.title)

	require.Len(t, capturer.captured, 1)
	node := capturer.captured[0]
	assert.True(t, node.Offscreen)
	assert.True(t, strings.HasPrefix(node.ID, "summary-offscreen-"))
	assert.Equal(t, 1, capturer.mounted)
	assert.Zero(t, svc.Document().Len())
}

func TestExportCapturesMountedSummary(t *testing.T) {
	capturer := &fakeCapturer{}
	svc := newTestService(capturer, &fakePages{}, &fakeSheets{})
	rows, totals := sampleRows(t)

	require.NoError(t, svc.ShowSummary(rows, totals))
	_, err := svc.Export(context.Background(), rows, totals)
	require.NoError(t, err)

	require.Len(t, capturer.captured, 1)
	assert.Equal(t, SummaryNodeID, capturer.captured[0].ID)
	assert.False(t, capturer.captured[0].Offscreen)

	// live node stays mounted
	_, ok := svc.Document().Lookup(SummaryNodeID)
	assert.True(t, ok)

	svc.HideSummary()
	assert.Zero(t, svc.Document().Len())
}

func TestExportFailureLeavesNoTransientNode(t *testing.T) {
	tests := []struct {
		name     string
		capturer *fakeCapturer
		pages    *fakePages
	}{
		{"capture error", &fakeCapturer{err: errors.New("canvas tainted")}, &fakePages{}},
		{"encode error", &fakeCapturer{}, &fakePages{err: errors.New("bad png")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.capturer, tt.pages, &fakeSheets{})
			rows, totals := sampleRows(t)

			file, err := svc.Export(context.Background(), rows, totals)

			assert.Error(t, err)
			assert.Nil(t, file)
			assert.Zero(t, svc.Document().Len())
		})
	}
}

func TestExportHonoursContextDuringPaintDelay(t *testing.T) {
	capturer := &fakeCapturer{}
	doc := NewDocument()
	capturer.doc = doc
	svc := NewService(doc, capturer, &fakePages{}, &fakeSheets{}, logger.Nop(), Options{PaintDelay: time.Hour})
	rows, totals := sampleRows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Export(ctx, rows, totals)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, capturer.captured)
	assert.Zero(t, doc.Len())
}

func TestExportSpreadsheet(t *testing.T) {
	sheets := &fakeSheets{}
	svc := newTestService(&fakeCapturer{}, &fakePages{}, sheets)
	rows, totals := sampleRows(t)

	file, err := svc.ExportSpreadsheet(context.Background(), rows, totals)
	require.NoError(t, err)

	assert.Equal(t, "daily-orders-2026-10-19.xlsx", file.Name)
	assert.Equal(t, []string{"Total", "3", "—", "₹100"}, sheets.table.Footer)
}

func TestBuildSummaryTableAndMarkup(t *testing.T) {
	rows, totals := sampleRows(t)

	table := BuildSummaryTable(DefaultTitle, rows, totals)
	assert.Equal(t, []string{"Item", "Qty", "Rate", "Total"}, table.Columns)
	assert.Equal(t, [][]string{
		{"Dosai", "2", "₹30", "₹60"},
		{"Pongal", "1", "₹40", "₹40"},
	}, table.Rows)

	markup, err := RenderSummaryMarkup(table)
	require.NoError(t, err)
	assert.Contains(t, markup, "Daily Order Summary")
	assert.Contains(t, markup, "<td style=\"padding:8px;border-bottom:1px solid #f1f5f9\">Pongal</td>")
	assert.Contains(t, markup, "₹100")

	again, err := RenderSummaryMarkup(table)
	require.NoError(t, err)
	assert.Equal(t, markup, again)
}

func TestRenderSummaryMarkupEscapesNames(t *testing.T) {
	table := SummaryTable{Title: "t", Rows: [][]string{{"<b>Chilli</b>"}}}

	markup, err := RenderSummaryMarkup(table)
	require.NoError(t, err)

	assert.NotContains(t, markup, "<b>Chilli</b>")
	assert.Contains(t, markup, "&lt;b&gt;Chilli&lt;/b&gt;")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "daily-orders-2026-01-02.pdf", FileName(time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC), "pdf"))
}
