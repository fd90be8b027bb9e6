package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/draw"
)

// A4 portrait in millimetres, title at (10,15), image from (10,28).
const (
	marginX     = 10.0
	titleY      = 15.0
	imageY      = 28.0
	bottomSpace = 30.0
	titleSize   = 16.0
)

// Writer lays a captured summary onto a single A4 page.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WritePage scales img to the page width. A raster taller than the space
// left below the title is cropped at the bottom rather than squashed.
func (w *Writer) WritePage(img image.Image, title string) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("empty raster")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(true)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	imgW, imgH, keep := fitToPage(b.Dx(), b.Dy(), pageW, pageH)
	if keep < b.Dy() {
		img = crop(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+keep))
	}

	doc.SetFont("Helvetica", "", titleSize)
	doc.Text(marginX, titleY, title)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode raster: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("summary", opts, &buf)
	doc.ImageOptions("summary", marginX, imageY, imgW, imgH, false, opts, 0, "")

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return out.Bytes(), nil
}

// fitToPage returns the placed size in page units and how many raster rows
// survive. Rows past the bottom space are dropped, never squashed.
func fitToPage(w, h int, pageW, pageH float64) (imgW, imgH float64, keep int) {
	imgW = pageW - 2*marginX
	imgH = imgW * float64(h) / float64(w)

	maxH := pageH - bottomSpace
	if imgH <= maxH {
		return imgW, imgH, h
	}

	keep = int(float64(w) * maxH / imgW)
	if keep < 1 {
		keep = 1
	}
	return imgW, maxH, keep
}

func crop(img image.Image, r image.Rectangle) image.Image {
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(r)
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
