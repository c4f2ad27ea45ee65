package mockshot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/mockshot/internal/pdfinfo/pdftest"
)

var errFake = errors.New("fake failure")

// recordingSurface logs every call as a string and returns a raster
// naming the current viewport and page.
type recordingSurface struct {
	mu        sync.Mutex
	calls     []string
	viewport  string
	page      string
	failStep  string // "viewport", "navigate" or "screenshot"
	failPage  string
	closed    int
	closeErr  error
	openCount int
	interrupt func() // called when the failing step runs
}

func (s *recordingSurface) log(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *recordingSurface) fails(step string) bool {
	failing := s.failStep == step && (s.failPage == "" || s.failPage == s.page)
	if failing && s.interrupt != nil {
		s.interrupt()
	}
	return failing
}

func (s *recordingSurface) SetViewport(_ context.Context, v Viewport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v.Name
	s.log("viewport %s %dx%d", v.Name, v.Width, v.Height)
	if s.fails("viewport") {
		return errFake
	}
	return nil
}

func (s *recordingSurface) Navigate(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = filepath.Base(url)
	s.log("navigate %s", s.page)
	if !strings.HasPrefix(url, "file://") {
		return fmt.Errorf("not a file URL: %s", url)
	}
	if s.fails("navigate") {
		return errFake
	}
	return nil
}

func (s *recordingSurface) Screenshot(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log("screenshot")
	if s.fails("screenshot") {
		return nil, errFake
	}
	return []byte("png:" + s.page + "@" + s.viewport), nil
}

func (s *recordingSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return s.closeErr
}

// factory returns a SurfaceFactory handing out s.
func (s *recordingSurface) factory() SurfaceFactory {
	return func(context.Context) (Surface, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.openCount++
		return s, nil
	}
}

// stubRenderer returns fixed bytes and remembers the gallery it printed.
type stubRenderer struct {
	data    []byte
	err     error
	printed []string
}

func newA4Renderer(pages int) *stubRenderer {
	return &stubRenderer{data: pdftest.A4(pages)}
}

func (r *stubRenderer) Render(_ context.Context, galleryPath string) ([]byte, error) {
	r.printed = append(r.printed, galleryPath)
	if r.err != nil {
		return nil, r.err
	}
	return r.data, nil
}

// recordingReporter collects reporter calls.
type recordingReporter struct {
	captured []*CaptureRecord
	wrote    []string
	warnings []error
}

func (r *recordingReporter) Captured(rec *CaptureRecord) { r.captured = append(r.captured, rec) }
func (r *recordingReporter) Wrote(path string)          { r.wrote = append(r.wrote, path) }
func (r *recordingReporter) Warn(err error)             { r.warnings = append(r.warnings, err) }

// noSleep skips the settle delay but honours cancellation.
func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }
