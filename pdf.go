package mockshot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/mockshot/internal/fileutil"
)

// DocumentFileName is the printed gallery.
const DocumentFileName = "mockups.pdf"

// PDF page dimensions in inches (ISO A4).
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// DocumentRenderer converts a written gallery document into PDF bytes.
type DocumentRenderer interface {
	Render(ctx context.Context, galleryPath string) ([]byte, error)
}

// Compile-time interface check.
var _ DocumentRenderer = (*rodRenderer)(nil)

// rodRenderer prints the gallery from a fresh tab of the run's browser.
type rodRenderer struct {
	browser *Browser
	timeout time.Duration
}

// newRodRenderer creates a renderer on b. A positive timeout bounds the
// load and print calls.
func newRodRenderer(b *Browser, timeout time.Duration) *rodRenderer {
	return &rodRenderer{browser: b, timeout: timeout}
}

// Render loads galleryPath and prints it with backgrounds, no header or
// footer, on A4 paper.
func (r *rodRenderer) Render(ctx context.Context, galleryPath string) ([]byte, error) {
	url, err := fileutil.FileURL(galleryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	page, err := r.browser.newPage(ctx)
	if err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: %w", ErrDocumentRender, err))
	}
	defer func() { _ = page.Close() }()

	stepCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	bound := page.Context(stepCtx)

	if err := bound.Navigate(url); err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: loading %s: %v", ErrDocumentRender, galleryPath, err))
	}
	if err := bound.WaitLoad(); err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: loading %s: %v", ErrDocumentRender, galleryPath, err))
	}

	reader, err := bound.PDF(buildPDFOptions())
	if err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: %v", ErrDocumentRender, err))
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: reading PDF stream: %v", ErrDocumentRender, err))
	}
	return data, nil
}

// buildPDFOptions returns the fixed print settings for the gallery.
func buildPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		PrintBackground:     true,
		DisplayHeaderFooter: false,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
