package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/YelzhanWeb/daily-orders/internal/app/export"
)

const (
	DefaultScale = 2

	margin   = 16
	cellPadX = 8
	cellPadY = 6
)

var (
	ink    = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	muted  = color.RGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xff}
	rule   = color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	header = color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
)

// Capturer draws a summary node onto a white canvas and upsamples it.
type Capturer struct {
	scale int
	face  font.Face
}

func NewCapturer(scale int) *Capturer {
	if scale < 1 {
		scale = DefaultScale
	}
	return &Capturer{scale: scale, face: basicfont.Face7x13}
}

func (c *Capturer) Capture(ctx context.Context, node export.Node) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := node.Table
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("node %s has no table to draw", node.ID)
	}

	widths := c.columnWidths(table)
	lineH := c.face.Metrics().Height.Ceil()
	rowH := lineH + 2*cellPadY

	tableW := 0
	for _, w := range widths {
		tableW += w
	}
	// title, header, rows, footer
	lines := len(table.Rows) + 2
	width := tableW + 2*margin
	height := margin + rowH + lines*rowH + margin

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(src, src.Bounds(), image.White, image.Point{}, draw.Src)

	y := margin
	c.text(src, margin, y+cellPadY, fold(table.Title), ink)
	y += rowH

	fill(src, image.Rect(margin, y, margin+tableW, y+rowH), header)
	c.row(src, y, widths, table.Columns, muted)
	y += rowH
	hline(src, margin, margin+tableW, y-1)

	for _, cells := range table.Rows {
		c.row(src, y, widths, cells, ink)
		y += rowH
		hline(src, margin, margin+tableW, y-1)
	}

	if len(table.Footer) > 0 {
		c.row(src, y, widths, table.Footer, ink)
	}

	if c.scale == 1 {
		return src, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width*c.scale, height*c.scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

func (c *Capturer) columnWidths(table export.SummaryTable) []int {
	widths := make([]int, len(table.Columns))
	measure := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if w := font.MeasureString(c.face, fold(cell)).Ceil() + 2*cellPadX; w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(table.Columns)
	for _, r := range table.Rows {
		measure(r)
	}
	measure(table.Footer)
	return widths
}

// row draws one line of cells. The first column is left aligned, the rest right aligned.
func (c *Capturer) row(img *image.RGBA, y int, widths []int, cells []string, col color.Color) {
	x := margin
	for i, w := range widths {
		if i < len(cells) {
			s := fold(cells[i])
			tx := x + cellPadX
			if i > 0 {
				tx = x + w - cellPadX - font.MeasureString(c.face, s).Ceil()
			}
			c.text(img, tx, y+cellPadY, s, col)
		}
		x += w
	}
}

func (c *Capturer) text(img *image.RGBA, x, top int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, top+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

func fill(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func hline(img *image.RGBA, x0, x1, y int) {
	fill(img, image.Rect(x0, y, x1, y+1), rule)
}

var asciiFold = strings.NewReplacer("₹", "Rs.", "—", "-", "–", "-", "×", "x")

// fold maps text onto what the bitmap face can draw.
func fold(s string) string {
	s = asciiFold.Replace(s)
	return strings.Map(func(r rune) rune {
		if r > 0x7e {
			return '?'
		}
		return r
	}, s)
}
