package mockshot

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/mockshot/internal/fileutil"
	"github.com/alnah/mockshot/internal/filelock"
)

// DefaultSettleDelay is the wait after the load event before capturing,
// letting fonts, layout and CSS transitions finish.
const DefaultSettleDelay = 250 * time.Millisecond

// filePermissions is rw-r--r-- for written artifacts.
const filePermissions = 0o644

// PageLocator maps a resolved page to its path on disk.
type PageLocator interface {
	Path(name string) string
}

// CaptureEngine renders every page at every viewport through one surface,
// strictly one navigation at a time.
type CaptureEngine struct {
	newSurface SurfaceFactory
	locator    PageLocator
	outDir     string
	settle     time.Duration
	onCapture  func(*CaptureRecord)
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewCaptureEngine creates an engine writing rasters into outDir.
// onCapture, if non-nil, is called after each raster is written.
func NewCaptureEngine(newSurface SurfaceFactory, locator PageLocator, outDir string, settle time.Duration, onCapture func(*CaptureRecord)) *CaptureEngine {
	return &CaptureEngine{
		newSurface: newSurface,
		locator:    locator,
		outDir:     outDir,
		settle:     settle,
		onCapture:  onCapture,
		sleep:      sleepContext,
	}
}

// CaptureAll renders pages in catalog order and, for each page, viewports in
// list order. It returns one record per (page, viewport) in that order.
// The first navigation or write failure aborts the run; rasters already
// written stay on disk.
func (e *CaptureEngine) CaptureAll(ctx context.Context, pages []ResolvedPage, viewports []Viewport) (records []*CaptureRecord, err error) {
	if len(pages) == 0 || len(viewports) == 0 {
		return nil, nil
	}

	surface, err := e.newSurface(ctx)
	if err != nil {
		return nil, interrupted(ctx, err)
	}
	defer func() {
		if closeErr := surface.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing capture surface: %w", closeErr)
		}
	}()

	records = make([]*CaptureRecord, 0, len(pages)*len(viewports))
	for _, page := range pages {
		url, err := fileutil.FileURL(e.locator.Path(string(page)))
		if err != nil {
			return records, fmt.Errorf("%w: %s: %v", ErrNavigation, page, err)
		}

		for _, vp := range viewports {
			rec, err := e.captureOne(ctx, surface, page, url, vp)
			if err != nil {
				return records, err
			}
			records = append(records, rec)
			if e.onCapture != nil {
				e.onCapture(rec)
			}
		}
	}
	return records, nil
}

// captureOne performs resize, load, settle, screenshot and write for one pair.
func (e *CaptureEngine) captureOne(ctx context.Context, surface Surface, page ResolvedPage, url string, vp Viewport) (*CaptureRecord, error) {
	if err := surface.SetViewport(ctx, vp); err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: %s at %s: resizing viewport: %v", ErrNavigation, page, vp.Name, err))
	}
	if err := surface.Navigate(ctx, url); err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: %s at %s: %v", ErrNavigation, page, vp.Name, err))
	}
	if err := e.sleep(ctx, e.settle); err != nil {
		return nil, err
	}

	png, err := surface.Screenshot(ctx)
	if err != nil {
		return nil, interrupted(ctx, fmt.Errorf("%w: %s at %s: %v", ErrNavigation, page, vp.Name, err))
	}

	out := filepath.Join(e.outDir, OutputName(page, vp.Name))
	if err := filelock.AtomicWrite(out, png, filePermissions); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCaptureWrite, out, err)
	}

	return &CaptureRecord{
		Title:        CaptureTitle(page, vp.Name),
		OutputPath:   out,
		ViewportKind: vp.Name,
		SourceFile:   string(page),
	}, nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
