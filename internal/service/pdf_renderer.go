package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"pdf-workbench/internal/domain"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

const (
	// PDF user space is 72 units per inch; fitz.Bound reports page size in it.
	pointsPerInch     = 72.0
	pageRenderTimeout = 90 * time.Second
)

// FitzRasterizer renders PDF pages with MuPDF
type FitzRasterizer struct {
	logger  domain.Logger
	timeout time.Duration
}

// NewFitzRasterizer creates a new MuPDF backed rasterizer
func NewFitzRasterizer(logger domain.Logger) *FitzRasterizer {
	return &FitzRasterizer{
		logger:  logger,
		timeout: pageRenderTimeout,
	}
}

// Open parses a document from memory
func (r *FitzRasterizer) Open(data []byte) (domain.RasterDocument, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidFile
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return newFitzDocument(doc, r.logger, r.timeout), nil
}

var errDocumentClosed = errors.New("document closed")

// fitzPages is the part of *fitz.Document the renderer uses
type fitzPages interface {
	NumPage() int
	Bound(pageNumber int) (image.Rectangle, error)
	ImageDPI(pageNumber int, dpi float64) (*image.RGBA, error)
	Close() error
}

// fitzDocument wraps a MuPDF document. Renders abandoned on cancel or timeout
// keep running in MuPDF; Close waits for them before dropping the document.
type fitzDocument struct {
	doc     fitzPages
	logger  domain.Logger
	timeout time.Duration

	mu       sync.Mutex
	closed   bool
	inFlight sync.WaitGroup
}

func newFitzDocument(doc fitzPages, logger domain.Logger, timeout time.Duration) *fitzDocument {
	return &fitzDocument{doc: doc, logger: logger, timeout: timeout}
}

func (d *fitzDocument) NumPage() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.inFlight.Wait()
	return d.doc.Close()
}

// acquire registers a background render; it fails once Close has started
func (d *fitzDocument) acquire() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.inFlight.Add(1)
	return true
}

type renderResult struct {
	img *image.RGBA
	err error
}

// RenderPage renders one page at the DPI that maps its width to targetWidth.
// MuPDF rounds the pixmap size, so the result is rescaled when it is off.
func (d *fitzDocument) RenderPage(ctx context.Context, pageIndex int, targetWidth int) (*image.RGBA, error) {
	if pageIndex < 0 || pageIndex >= d.doc.NumPage() {
		return nil, domain.ErrPageOutOfRange
	}
	if targetWidth <= 0 {
		return nil, fmt.Errorf("invalid target width %d", targetWidth)
	}

	bound, err := d.doc.Bound(pageIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d bounds: %w", pageIndex+1, err)
	}
	if bound.Dx() <= 0 || bound.Dy() <= 0 {
		return nil, fmt.Errorf("page %d has empty bounds", pageIndex+1)
	}
	dpi := pointsPerInch * float64(targetWidth) / float64(bound.Dx())

	if !d.acquire() {
		return nil, errDocumentClosed
	}
	resultCh := make(chan renderResult, 1)
	go func() {
		defer d.inFlight.Done()
		img, err := d.doc.ImageDPI(pageIndex, dpi)
		resultCh <- renderResult{img: img, err: err}
	}()

	var res renderResult
	select {
	case res = <-resultCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(d.timeout):
		d.logger.Warn("PDF page render timeout", "page", pageIndex+1, "timeout_sec", int(d.timeout.Seconds()))
		return nil, fmt.Errorf("page %d: timeout after %v", pageIndex+1, d.timeout)
	}
	if res.err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageIndex+1, res.err)
	}

	return ScaleToWidth(res.img, targetWidth), nil
}

// ScaleToWidth returns img resized to exactly width pixels, keeping the aspect
// ratio. An image already at that width is returned as is.
func ScaleToWidth(img *image.RGBA, width int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return img
	}
	if b.Dx() == width && b.Min == (image.Point{}) {
		return img
	}
	height := int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
