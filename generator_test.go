package mockshot

// Notes:
// - Generator runs here use recordingSurface and stubRenderer; the same
//   scenario against a real Chrome lives in integration_test.go.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/mockshot/internal/filelock"
	"github.com/alnah/mockshot/internal/pdfinfo/pdftest"
)

// writePages creates a pages directory holding the named documents.
func writePages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<html><body><h1>"+name+"</h1></body></html>"), 0o644))
	}
	return dir
}

// newTestGenerator wires fakes into a Generator.
func newTestGenerator(t *testing.T, s *recordingSurface, r DocumentRenderer, rep Reporter, opts ...Option) *Generator {
	t.Helper()
	base := []Option{
		WithSurfaceFactory(s.factory()),
		WithDocumentRenderer(r),
		WithSettleDelay(0),
		WithReporter(rep),
	}
	g, err := NewGenerator(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

// ---------------------------------------------------------------------------
// TestGeneratorRun - End-to-end scenario with a missing page
// ---------------------------------------------------------------------------

func TestGeneratorRun_EndToEnd(t *testing.T) {
	t.Parallel()

	src := writePages(t, "admin.html")
	out := filepath.Join(t.TempDir(), "mockups")
	s := &recordingSurface{}
	r := newA4Renderer(2)
	rep := &recordingReporter{}
	g := newTestGenerator(t, s, r, rep, WithMissingPolicy(MissingWarn))

	res, err := g.Run(context.Background(), Job{
		SourceDir: src,
		OutputDir: out,
		Sections:  []RoleSection{{Role: "Administrador", Files: []string{"admin.html", "missing.html"}}},
		Viewports: DefaultViewports(),
	})
	require.NoError(t, err)

	assert.Equal(t, []ResolvedPage{"admin.html"}, res.Pages)
	require.Len(t, res.Records, 2)
	for _, name := range []string{"admin_desktop.png", "admin_mobile.png", GalleryFileName, DocumentFileName} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoFileExists(t, filepath.Join(out, filelock.LockFileName), "lock released")

	require.Len(t, res.Gallery.Sections, 1)
	assert.Equal(t, 2, res.Gallery.RecordCount())
	assert.Equal(t, filepath.Join(out, GalleryFileName), res.GalleryPath)
	assert.Equal(t, filepath.Join(out, DocumentFileName), res.DocumentPath)
	assert.Equal(t, 2, res.DocumentPages)
	assert.Equal(t, []string{res.GalleryPath}, r.printed, "document printed from the written gallery")

	assert.Len(t, rep.captured, 2)
	assert.Equal(t, []string{res.GalleryPath, res.DocumentPath}, rep.wrote)
	require.Len(t, rep.warnings, 1)
	assert.ErrorIs(t, rep.warnings[0], ErrMissingInput)
	assert.Contains(t, rep.warnings[0].Error(), "missing.html")

	gallery, err := os.ReadFile(res.GalleryPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(gallery), "<h1>"))
	assert.Equal(t, 2, strings.Count(string(gallery), `class="page"`))
}

func TestGeneratorRun_MultiRolePageCapturedOnce(t *testing.T) {
	t.Parallel()

	src := writePages(t, "admin.html", "ventas.html")
	s := &recordingSurface{}
	g := newTestGenerator(t, s, newA4Renderer(1), &recordingReporter{})

	res, err := g.Run(context.Background(), Job{
		SourceDir: src,
		OutputDir: t.TempDir(),
		Sections: []RoleSection{
			{Role: "Administrador", Files: []string{"admin.html", "ventas.html"}},
			{Role: "Vendedor", Files: []string{"ventas.html"}},
		},
		Viewports: DefaultViewports(),
		SkipPDF:   true,
	})
	require.NoError(t, err)

	assert.Len(t, res.Records, 4, "pages x viewports")
	navigations := 0
	for _, c := range s.calls {
		if strings.HasPrefix(c, "navigate ventas.html") {
			navigations++
		}
	}
	assert.Equal(t, 2, navigations, "one render per viewport")
	assert.Equal(t, 6, res.Gallery.RecordCount())
	assert.Same(t, res.Gallery.Sections[0].Records[2], res.Gallery.Sections[1].Records[0])
	assert.Empty(t, res.DocumentPath)
}

func TestGeneratorRun_Globs(t *testing.T) {
	t.Parallel()

	src := writePages(t, "b.html", "a.html", "notes.txt")
	s := &recordingSurface{}
	g := newTestGenerator(t, s, newA4Renderer(1), &recordingReporter{})

	res, err := g.Run(context.Background(), Job{
		SourceDir: src,
		OutputDir: t.TempDir(),
		Sections:  []RoleSection{{Role: "All", Files: []string{"*.html"}}},
		Viewports: DefaultViewports()[:1],
		SkipPDF:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []ResolvedPage{"a.html", "b.html"}, res.Pages)
}

func TestGeneratorRun_Idempotent(t *testing.T) {
	t.Parallel()

	src := writePages(t, "admin.html")
	out := t.TempDir()
	job := Job{
		SourceDir: src,
		OutputDir: out,
		Sections:  []RoleSection{{Role: "Administrador", Files: []string{"admin.html"}}},
		Viewports: DefaultViewports(),
	}
	g := newTestGenerator(t, &recordingSurface{}, newA4Renderer(1), &recordingReporter{})

	_, err := g.Run(context.Background(), job)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(out, GalleryFileName))
	require.NoError(t, err)

	_, err = g.Run(context.Background(), job)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(out, GalleryFileName))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGeneratorRun_NoPagesStillWritesGallery(t *testing.T) {
	t.Parallel()

	src := writePages(t)
	out := t.TempDir()
	s := &recordingSurface{}
	g := newTestGenerator(t, s, newA4Renderer(1), &recordingReporter{})

	res, err := g.Run(context.Background(), Job{
		SourceDir: src,
		OutputDir: out,
		Sections:  []RoleSection{{Role: "Cliente", Files: []string{"tienda.html"}}},
		Viewports: DefaultViewports(),
		SkipPDF:   true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.Gallery.Sections)
	assert.Zero(t, s.openCount)
	assert.FileExists(t, filepath.Join(out, GalleryFileName))
}

// ---------------------------------------------------------------------------
// TestGeneratorRun_Failures - Fatal errors
// ---------------------------------------------------------------------------

func TestGeneratorRun_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		job      func(src, out string) Job
		surface  *recordingSurface
		renderer *stubRenderer
		opts     []Option
		wantErr  error
	}{
		{
			name: "source directory missing",
			job: func(src, out string) Job {
				return Job{SourceDir: filepath.Join(src, "nope"), OutputDir: out, Sections: adminSection(), Viewports: DefaultViewports()}
			},
			wantErr: ErrSourceDir,
		},
		{
			name: "strict missing policy",
			job: func(src, out string) Job {
				return Job{SourceDir: src, OutputDir: out, Sections: []RoleSection{{Role: "A", Files: []string{"missing.html"}}}, Viewports: DefaultViewports()}
			},
			opts:    []Option{WithMissingPolicy(MissingFail)},
			wantErr: ErrMissingInput,
		},
		{
			name: "no viewports",
			job: func(src, out string) Job {
				return Job{SourceDir: src, OutputDir: out, Sections: adminSection()}
			},
			wantErr: ErrNoViewports,
		},
		{
			name: "no roles",
			job: func(src, out string) Job {
				return Job{SourceDir: src, OutputDir: out, Viewports: DefaultViewports()}
			},
			wantErr: ErrNoRoles,
		},
		{
			name: "base name collision",
			job: func(src, out string) Job {
				return Job{SourceDir: src, OutputDir: out, Sections: []RoleSection{{Role: "A", Files: []string{"admin.html", "v2/admin.html"}}}, Viewports: DefaultViewports()}
			},
			wantErr: ErrOutputConflict,
		},
		{
			name: "raster name collision across viewports",
			job: func(src, out string) Job {
				return Job{
					SourceDir: src,
					OutputDir: out,
					Sections:  []RoleSection{{Role: "A", Files: []string{"a_b.html", "a.html"}}},
					Viewports: []Viewport{{Name: "c", Width: 800, Height: 600}, {Name: "b_c", Width: 400, Height: 600}},
				}
			},
			wantErr: ErrOutputConflict,
		},
		{
			name:    "navigation failure",
			job:     func(src, out string) Job { return Job{SourceDir: src, OutputDir: out, Sections: adminSection(), Viewports: DefaultViewports()} },
			surface: &recordingSurface{failStep: "navigate"},
			wantErr: ErrNavigation,
		},
		{
			name:     "renderer failure",
			job:      func(src, out string) Job { return Job{SourceDir: src, OutputDir: out, Sections: adminSection(), Viewports: DefaultViewports()} },
			renderer: &stubRenderer{err: ErrDocumentRender},
			wantErr:  ErrDocumentRender,
		},
		{
			name:     "renderer returns non-PDF bytes",
			job:      func(src, out string) Job { return Job{SourceDir: src, OutputDir: out, Sections: adminSection(), Viewports: DefaultViewports()} },
			renderer: &stubRenderer{data: []byte("<html>")},
			wantErr:  ErrDocumentRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := tt.surface
			if s == nil {
				s = &recordingSurface{}
			}
			r := tt.renderer
			if r == nil {
				r = newA4Renderer(1)
			}
			src := writePages(t, "admin.html", "v2/admin.html", "a_b.html", "a.html")
			g := newTestGenerator(t, s, r, &recordingReporter{}, tt.opts...)

			_, err := g.Run(context.Background(), tt.job(src, t.TempDir()))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func adminSection() []RoleSection {
	return []RoleSection{{Role: "Administrador", Files: []string{"admin.html"}}}
}

func TestGeneratorRun_OutputLocked(t *testing.T) {
	t.Parallel()

	src := writePages(t, "admin.html")
	out := t.TempDir()
	lock, err := filelock.LockDir(out)
	require.NoError(t, err)
	defer func() { _ = lock.Unlock() }()

	s := &recordingSurface{}
	g := newTestGenerator(t, s, newA4Renderer(1), &recordingReporter{})
	_, err = g.Run(context.Background(), Job{SourceDir: src, OutputDir: out, Sections: adminSection(), Viewports: DefaultViewports()})

	assert.ErrorIs(t, err, ErrOutputLocked)
	assert.Zero(t, s.openCount, "no capture while another run holds the directory")
}

func TestGeneratorRun_PageSizeMismatchWarns(t *testing.T) {
	t.Parallel()

	src := writePages(t, "admin.html")
	rep := &recordingReporter{}
	g := newTestGenerator(t, &recordingSurface{}, &stubRenderer{data: pdftest.Document(1, 612, 792)}, rep)

	res, err := g.Run(context.Background(), Job{SourceDir: src, OutputDir: t.TempDir(), Sections: adminSection(), Viewports: DefaultViewports()})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DocumentPages)
	require.Len(t, rep.warnings, 1)
	assert.Contains(t, rep.warnings[0].Error(), "page size")
}

// ---------------------------------------------------------------------------
// TestGenerate - Convenience wrapper
// ---------------------------------------------------------------------------

func TestGenerate(t *testing.T) {
	t.Parallel()

	src := writePages(t, "admin.html")
	s := &recordingSurface{}
	res, err := Generate(context.Background(),
		Job{SourceDir: src, OutputDir: t.TempDir(), Sections: adminSection(), Viewports: DefaultViewports()},
		WithSurfaceFactory(s.factory()),
		WithDocumentRenderer(newA4Renderer(3)),
		WithSettleDelay(0),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, res.DocumentPages)
	assert.Equal(t, 1, s.closed)
}

func TestNewGenerator_InvalidAssetPath(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(WithAssetPath(filepath.Join(t.TempDir(), "absent")))
	assert.Error(t, err)
}
