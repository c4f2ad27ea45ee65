// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory indicates an existing path that should be a directory is not.
var ErrNotDirectory = errors.New("path exists and is not a directory")

// EnsureDir creates dir (and parents) if absent. Calling it again on an
// existing directory is a no-op.
func EnsureDir(dir string, perm fs.FileMode) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FileURL converts a filesystem path to an absolute file:// URL,
// percent-encoding characters such as spaces.
//
// Examples:
//   - "/srv/pages/admin.html" -> "file:///srv/pages/admin.html"
//   - "/tmp/my pages/a.html"  -> "file:///tmp/my%20pages/a.html"
//   - `C:\pages\a.html`       -> "file:///C:/pages/a.html" (Windows)
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}
