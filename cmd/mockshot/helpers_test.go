package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alnah/mockshot"
	"github.com/alnah/mockshot/internal/pdfinfo/pdftest"
)

// testEnv returns an Environment writing to buffers and reading env vars
// from vars only.
func testEnv(vars map[string]string, opts ...mockshot.Option) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	env := &Environment{
		Stdout:           stdout,
		Stderr:           stderr,
		Getenv:           func(k string) string { return vars[k] },
		Environ:          func() []string { return environ },
		GeneratorOptions: opts,
	}
	return env, stdout, stderr
}

// fakeSurface records navigations and returns a fixed raster.
type fakeSurface struct {
	mu      sync.Mutex
	visited []string
	failOn  string
	closed  bool
}

func (s *fakeSurface) SetViewport(context.Context, mockshot.Viewport) error { return nil }

func (s *fakeSurface) Navigate(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && filepath.Base(url) == s.failOn {
		return os.ErrDeadlineExceeded
	}
	s.visited = append(s.visited, url)
	return nil
}

func (s *fakeSurface) Screenshot(context.Context) ([]byte, error) {
	return []byte("\x89PNG\r\n\x1a\nfake"), nil
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

// fakeRenderer returns a two page A4 document.
type fakeRenderer struct{}

func (fakeRenderer) Render(context.Context, string) ([]byte, error) {
	return pdftest.A4(2), nil
}

// fakeOptions swaps the browser for fakes.
func fakeOptions(s *fakeSurface) []mockshot.Option {
	return []mockshot.Option{
		mockshot.WithSurfaceFactory(func(context.Context) (mockshot.Surface, error) { return s, nil }),
		mockshot.WithDocumentRenderer(fakeRenderer{}),
		mockshot.WithSettleDelay(0),
	}
}

// writeProject creates a pages directory with the given files and a
// config declaring them under one role. It returns the config path,
// the pages dir and the output dir.
func writeProject(t *testing.T, declared []string, present ...string) (cfgPath, pagesDir, outDir string) {
	t.Helper()
	root := t.TempDir()
	pagesDir = filepath.Join(root, "pages")
	outDir = filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(pagesDir, 0o755))
	for _, name := range present {
		require.NoError(t, os.WriteFile(filepath.Join(pagesDir, name), []byte("<html><body>"+name+"</body></html>"), 0o644))
	}

	var files bytes.Buffer
	for _, f := range declared {
		files.WriteString("      - \"" + f + "\"\n")
	}
	cfg := "source: " + pagesDir + "\n" +
		"output: " + outDir + "\n" +
		"settleDelay: \"0\"\n" +
		"viewports:\n" +
		"  - {name: desktop, width: 1440, height: 900}\n" +
		"  - {name: mobile, width: 390, height: 844}\n" +
		"roles:\n" +
		"  - role: Administrador\n" +
		"    files:\n" + files.String()
	cfgPath = filepath.Join(root, "mockshot.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, pagesDir, outDir
}
