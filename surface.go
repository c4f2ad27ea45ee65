package mockshot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Surface is a single browsing surface reused across every capture.
// Viewport size is mutable state on the handle; calls must not overlap.
type Surface interface {
	// SetViewport resizes the surface for the following navigations.
	SetViewport(ctx context.Context, v Viewport) error
	// Navigate loads url and blocks until the page's load event fired.
	Navigate(ctx context.Context, url string) error
	// Screenshot returns a PNG of the full scrollable page.
	Screenshot(ctx context.Context) ([]byte, error)
	// Close releases the surface.
	Close() error
}

// SurfaceFactory opens the surface used for a capture run.
type SurfaceFactory func(ctx context.Context) (Surface, error)

// Compile-time interface check.
var _ Surface = (*rodSurface)(nil)

// rodSurface implements Surface with a single go-rod page.
type rodSurface struct {
	page    *rod.Page
	timeout time.Duration
}

// rodSurfaceFactory opens capture surfaces on b. A positive timeout bounds
// each navigation and screenshot.
func rodSurfaceFactory(b *Browser, timeout time.Duration) SurfaceFactory {
	return func(ctx context.Context) (Surface, error) {
		page, err := b.newPage(ctx)
		if err != nil {
			return nil, err
		}
		return &rodSurface{page: page, timeout: timeout}, nil
	}
}

// bound derives the page handle for one blocking call.
func (s *rodSurface) bound(ctx context.Context) (*rod.Page, context.CancelFunc) {
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		return s.page.Context(ctx), cancel
	}
	return s.page.Context(ctx), func() {}
}

func (s *rodSurface) SetViewport(ctx context.Context, v Viewport) error {
	page, cancel := s.bound(ctx)
	defer cancel()

	return page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             v.Width,
		Height:            v.Height,
		DeviceScaleFactor: 1,
	})
}

func (s *rodSurface) Navigate(ctx context.Context, url string) error {
	page, cancel := s.bound(ctx)
	defer cancel()

	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

func (s *rodSurface) Screenshot(ctx context.Context) ([]byte, error) {
	page, cancel := s.bound(ctx)
	defer cancel()

	data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("full-page screenshot: %w", err)
	}
	return data, nil
}

func (s *rodSurface) Close() error {
	return s.page.Close()
}
