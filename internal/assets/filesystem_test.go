package assets

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAsset creates {base}/{dir}/{name} with content.
func writeAsset(t *testing.T, base, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(base, dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, dir, name), []byte(content), 0o644))
}

// ---------------------------------------------------------------------------
// TestNewFilesystemLoader - Base path validation
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := NewFilesystemLoader(dir)
	assert.NoError(t, err)

	for _, path := range []string{"", filepath.Join(dir, "absent"), file} {
		_, err := NewFilesystemLoader(path)
		assert.ErrorIs(t, err, ErrInvalidBasePath, "path %q", path)
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader - Loading overrides from disk
// ---------------------------------------------------------------------------

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "gallery.css", "body{color:red}")
	writeAsset(t, base, "templates", "gallery.html", "<p>{{.Title}}</p>")

	l, err := NewFilesystemLoader(base)
	require.NoError(t, err)

	css, err := l.LoadStyle("gallery")
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", css)

	tmpl, err := l.LoadTemplate("gallery")
	require.NoError(t, err)
	assert.Equal(t, "<p>{{.Title}}</p>", tmpl)

	_, err = l.LoadStyle("print")
	assert.ErrorIs(t, err, ErrStyleNotFound)
	_, err = l.LoadTemplate("print")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = l.LoadStyle("../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidAssetName)
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	t.Parallel()

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.css"), []byte("secret"), 0o644))

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "styles"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(base, "styles", "gallery.css")))

	l, err := NewFilesystemLoader(base)
	require.NoError(t, err)

	_, err = l.LoadStyle("gallery")
	assert.ErrorIs(t, err, ErrPathTraversal)
}
