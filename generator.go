package mockshot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/mockshot/internal/assets"
	"github.com/alnah/mockshot/internal/filelock"
	"github.com/alnah/mockshot/internal/fileutil"
	"github.com/alnah/mockshot/internal/pdfinfo"
)

// dirPermissions is rwxr-x--- for the output directory.
const dirPermissions = 0o750

// pageSizeTolerance is the accepted deviation, in inches, of the printed page.
const pageSizeTolerance = 0.05

// Job describes one documentation build.
type Job struct {
	SourceDir string
	OutputDir string
	Sections  []RoleSection
	Viewports []Viewport
	SkipPDF   bool // stop after the gallery document
}

// Validate checks the job before any side effect.
func (j Job) Validate() error {
	if j.SourceDir == "" {
		return fmt.Errorf("%w: empty path", ErrSourceDir)
	}
	if j.OutputDir == "" {
		return fmt.Errorf("%w: empty output directory", ErrGalleryWrite)
	}
	if err := ValidateSections(j.Sections); err != nil {
		return err
	}
	return ValidateViewports(j.Viewports)
}

// Result reports what a run produced.
type Result struct {
	Pages         []ResolvedPage
	Records       []*CaptureRecord
	Gallery       Gallery
	GalleryPath   string
	DocumentPath  string // empty when the PDF was skipped
	DocumentPages int    // 0 when unknown or skipped
	Duration      time.Duration
}

// Generator runs the capture-and-compose pipeline:
// catalog, capture, gallery, document. Create with NewGenerator and
// Close when done to release the browser.
type Generator struct {
	cfg      generatorConfig
	browser  *Browser
	gallery  *GalleryBuilder
	surfaces SurfaceFactory
	renderer DocumentRenderer
	reporter Reporter
}

// NewGenerator creates a Generator. Chrome is started on first capture.
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := generatorConfig{
		timeout: DefaultTimeout,
		settle:  DefaultSettleDelay,
		missing: MissingSilent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	loader, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	gallery, err := NewGalleryBuilder(loader, cfg.galleryOpts...)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:      cfg,
		browser:  NewBrowser(cfg.browserOpts...),
		gallery:  gallery,
		surfaces: cfg.surfaceFactory,
		renderer: cfg.renderer,
		reporter: cfg.reporter,
	}
	if g.surfaces == nil {
		g.surfaces = rodSurfaceFactory(g.browser, cfg.timeout)
	}
	if g.renderer == nil {
		g.renderer = newRodRenderer(g.browser, cfg.timeout)
	}
	if g.reporter == nil {
		g.reporter = nopReporter{}
	}
	return g, nil
}

// Close releases the browser. Safe to call more than once.
func (g *Generator) Close() error {
	return g.browser.Close()
}

// Run executes job. Every failure other than an excluded page is fatal;
// artifacts written before the failure are left in place.
func (g *Generator) Run(ctx context.Context, job Job) (*Result, error) {
	start := time.Now()

	if err := job.Validate(); err != nil {
		return nil, err
	}

	src, err := OpenDirSource(job.SourceDir)
	if err != nil {
		return nil, err
	}

	sections, err := g.expand(src, job.Sections)
	if err != nil {
		return nil, err
	}

	pages, err := Resolve(sections, src.Exists, WithMissing(g.cfg.missing, g.reporter.Warn))
	if err != nil {
		return nil, err
	}
	if err := CheckOutputNames(pages, job.Viewports); err != nil {
		return nil, err
	}

	outDir, err := filepath.Abs(job.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureWrite, err)
	}
	if err := fileutil.EnsureDir(outDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureWrite, err)
	}

	lock, err := filelock.LockDir(outDir)
	if err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return nil, fmt.Errorf("%w: %s", ErrOutputLocked, outDir)
		}
		return nil, fmt.Errorf("%w: %v", ErrCaptureWrite, err)
	}
	defer func() { _ = lock.Unlock() }()

	res := &Result{Pages: pages}

	engine := NewCaptureEngine(g.surfaces, src, outDir, g.cfg.settle, g.reporter.Captured)
	res.Records, err = engine.CaptureAll(ctx, pages, job.Viewports)
	if err != nil {
		return res, err
	}

	res.Gallery = BuildGallery(sections, IndexRecords(res.Records))
	res.GalleryPath = filepath.Join(outDir, GalleryFileName)
	if err := g.gallery.WriteGallery(ctx, res.GalleryPath, res.Gallery); err != nil {
		return res, err
	}
	g.reporter.Wrote(res.GalleryPath)

	if !job.SkipPDF {
		if err := g.writeDocument(ctx, res, outDir); err != nil {
			return res, err
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

// expand resolves glob entries only when a section uses them.
func (g *Generator) expand(src *DirSource, sections []RoleSection) ([]RoleSection, error) {
	needsListing := false
	for _, sec := range sections {
		for _, f := range sec.Files {
			if isPattern(f) {
				needsListing = true
			}
		}
	}
	if !needsListing {
		return sections, nil
	}

	listing, err := src.List()
	if err != nil {
		return nil, err
	}
	return ExpandSections(sections, listing)
}

// writeDocument prints the gallery, checks the bytes and persists them.
func (g *Generator) writeDocument(ctx context.Context, res *Result, outDir string) error {
	data, err := g.renderer.Render(ctx, res.GalleryPath)
	if err != nil {
		return err
	}

	info, err := pdfinfo.Inspect(data)
	switch {
	case errors.Is(err, pdfinfo.ErrNotPDF), errors.Is(err, pdfinfo.ErrNoPages):
		return fmt.Errorf("%w: %v", ErrDocumentRender, err)
	case err != nil:
		g.reporter.Warn(fmt.Errorf("inspecting document: %w", err))
	default:
		res.DocumentPages = info.Pages
		if err := info.CheckPageSize(paperWidthInches, paperHeightInches, pageSizeTolerance); err != nil {
			g.reporter.Warn(err)
		}
	}

	path := filepath.Join(outDir, DocumentFileName)
	if err := filelock.AtomicWrite(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	res.DocumentPath = path
	g.reporter.Wrote(path)
	return nil
}

// Generate runs job with a throwaway Generator and releases the browser
// before returning, on success and on failure.
func Generate(ctx context.Context, job Job, opts ...Option) (res *Result, err error) {
	g, err := NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := g.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return g.Run(ctx, job)
}
