package mockshot

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default viewport names.
const (
	ViewportDesktop = "desktop"
	ViewportMobile  = "mobile"
)

// Viewport is a named rendering surface size simulating a device class.
type Viewport struct {
	Name   string
	Width  int
	Height int
}

// DefaultViewports returns desktop (1440x900) and mobile (390x844), in that order.
func DefaultViewports() []Viewport {
	return []Viewport{
		{Name: ViewportDesktop, Width: 1440, Height: 900},
		{Name: ViewportMobile, Width: 390, Height: 844},
	}
}

// Validate checks the viewport has a file-name-safe name and positive dimensions.
func (v Viewport) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidViewport)
	}
	if strings.ContainsAny(v.Name, "/\\\x00") {
		return fmt.Errorf("%w: name %q contains a path separator", ErrInvalidViewport, v.Name)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %q has %dx%d, dimensions must be positive", ErrInvalidViewport, v.Name, v.Width, v.Height)
	}
	return nil
}

// ValidateViewports checks every viewport and rejects duplicate names,
// since names key the output file names.
func ValidateViewports(viewports []Viewport) error {
	if len(viewports) == 0 {
		return ErrNoViewports
	}
	seen := make(map[string]bool, len(viewports))
	for _, v := range viewports {
		if err := v.Validate(); err != nil {
			return err
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateViewport, v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}

// RoleSection declares which pages a user role sees, in display order.
// Files may name pages that do not exist in the source.
type RoleSection struct {
	Role  string
	Notes string // optional Markdown shown under the role heading
	Files []string
}

// Validate checks the role is named and its file list has no duplicates.
func (r RoleSection) Validate() error {
	if strings.TrimSpace(r.Role) == "" {
		return fmt.Errorf("%w: role name cannot be empty", ErrInvalidRoleSection)
	}
	seen := make(map[string]bool, len(r.Files))
	for _, f := range r.Files {
		if f == "" {
			return fmt.Errorf("%w: %q has an empty file entry", ErrInvalidRoleSection, r.Role)
		}
		if seen[f] {
			return fmt.Errorf("%w: %q lists %q twice", ErrInvalidRoleSection, r.Role, f)
		}
		seen[f] = true
	}
	return nil
}

// ValidateSections validates each section in order.
func ValidateSections(sections []RoleSection) error {
	if len(sections) == 0 {
		return ErrNoRoles
	}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ResolvedPage is a page identifier confirmed to exist in the pages source,
// relative to the source directory.
type ResolvedPage string

// BaseName returns the page file name without directory or extension.
func (p ResolvedPage) BaseName() string {
	base := filepath.Base(filepath.FromSlash(string(p)))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CaptureRecord describes one written raster. Records are created once per
// (page, viewport) and shared by pointer between every role listing the page.
type CaptureRecord struct {
	Title        string
	OutputPath   string
	ViewportKind string
	SourceFile   string
}

// OutputName returns the raster file name for a page at a viewport:
// "{pageBaseName}_{viewportName}.png".
func OutputName(page ResolvedPage, viewportName string) string {
	return page.BaseName() + "_" + viewportName + ".png"
}

// CheckOutputNames rejects page and viewport sets where two captures map to
// the same raster file. Names are compared over every page × viewport pair,
// so "a_b.html" at "c" conflicts with "a.html" at "b_c".
func CheckOutputNames(pages []ResolvedPage, viewports []Viewport) error {
	type capture struct {
		page     ResolvedPage
		viewport string
	}
	owner := make(map[string]capture, len(pages)*len(viewports))
	for _, p := range pages {
		for _, v := range viewports {
			name := OutputName(p, v.Name)
			if prev, ok := owner[name]; ok {
				return fmt.Errorf("%w: %q at %q and %q at %q both write %s",
					ErrOutputConflict, prev.page, prev.viewport, p, v.Name, name)
			}
			owner[name] = capture{page: p, viewport: v.Name}
		}
	}
	return nil
}

// CaptureTitle returns the caption shown above a capture.
func CaptureTitle(page ResolvedPage, viewportName string) string {
	return string(page) + " – " + viewportName
}

// RecordIndex maps a source file to its records in viewport order.
type RecordIndex map[string][]*CaptureRecord

// IndexRecords groups records by source file, keeping capture order.
func IndexRecords(records []*CaptureRecord) RecordIndex {
	idx := make(RecordIndex)
	for _, r := range records {
		idx[r.SourceFile] = append(idx[r.SourceFile], r)
	}
	return idx
}

// GallerySection is one role heading and the captures shown under it.
type GallerySection struct {
	Role    string
	Notes   string
	Records []*CaptureRecord
}

// Gallery is the role-partitioned view over the captured records.
type Gallery struct {
	Sections []GallerySection
}

// RecordCount returns the number of page-blocks in the gallery.
func (g Gallery) RecordCount() int {
	n := 0
	for _, s := range g.Sections {
		n += len(s.Records)
	}
	return n
}
