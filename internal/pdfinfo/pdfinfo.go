// Package pdfinfo inspects rendered PDF bytes: magic header, page count,
// and page geometry. It is used to sanity-check the printed gallery.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Magic is the header every PDF file starts with.
const Magic = "%PDF-"

// pointsPerInch converts PDF user space units to inches.
const pointsPerInch = 72.0

// Sentinel errors for inspection.
var (
	ErrNotPDF   = errors.New("data is not a PDF document")
	ErrNoPages  = errors.New("PDF document has no pages")
	ErrReadPDF  = errors.New("failed to read PDF structure")
	ErrPageSize = errors.New("unexpected PDF page size")
)

// Info summarises a PDF document.
type Info struct {
	Pages  int
	Width  float64 // first page width, inches
	Height float64 // first page height, inches
}

// Inspect parses data and returns its page count and first page size.
func Inspect(data []byte) (*Info, error) {
	if !bytes.HasPrefix(data, []byte(Magic)) {
		return nil, ErrNotPDF
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPDF, err)
	}
	if ctx.PageCount == 0 {
		return nil, ErrNoPages
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: page dimensions: %v", ErrReadPDF, err)
	}

	info := &Info{Pages: ctx.PageCount}
	if len(dims) > 0 {
		info.Width = dims[0].Width / pointsPerInch
		info.Height = dims[0].Height / pointsPerInch
	}
	return info, nil
}

// CheckPageSize reports ErrPageSize when the first page differs from
// width x height inches by more than tolerance.
func (i *Info) CheckPageSize(width, height, tolerance float64) error {
	if math.Abs(i.Width-width) > tolerance || math.Abs(i.Height-height) > tolerance {
		return fmt.Errorf("%w: got %.2fx%.2f in, want %.2fx%.2f in", ErrPageSize, i.Width, i.Height, width, height)
	}
	return nil
}
