package mockshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// MissingPolicy decides what happens to a declared page absent from the source.
type MissingPolicy int

const (
	// MissingSilent drops the page without a diagnostic.
	MissingSilent MissingPolicy = iota
	// MissingWarn drops the page and reports it through the warning callback.
	MissingWarn
	// MissingFail aborts resolution with ErrMissingInput.
	MissingFail
)

// String returns the configuration name of the policy.
func (p MissingPolicy) String() string {
	switch p {
	case MissingSilent:
		return "silent"
	case MissingWarn:
		return "warn"
	case MissingFail:
		return "fail"
	default:
		return fmt.Sprintf("MissingPolicy(%d)", int(p))
	}
}

// ParseMissingPolicy parses "silent", "warn" or "fail" (case-insensitive).
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return MissingSilent, nil
	case "warn", "":
		return MissingWarn, nil
	case "fail":
		return MissingFail, nil
	default:
		return MissingSilent, fmt.Errorf("%w: %q (must be silent, warn, or fail)", ErrInvalidMissingPolicy, s)
	}
}

// resolveConfig holds options for Resolve.
type resolveConfig struct {
	policy MissingPolicy
	warn   func(error)
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolveConfig)

// WithMissing sets the missing-file policy. The warn callback is used by
// MissingWarn and may be nil.
func WithMissing(policy MissingPolicy, warn func(error)) ResolveOption {
	return func(c *resolveConfig) {
		c.policy = policy
		c.warn = warn
	}
}

// Resolve returns the distinct files referenced by sections that pass exists,
// in order of first appearance across sections in declaration order.
func Resolve(sections []RoleSection, exists func(string) bool, opts ...ResolveOption) ([]ResolvedPage, error) {
	cfg := resolveConfig{policy: MissingSilent}
	for _, opt := range opts {
		opt(&cfg)
	}

	seen := make(map[string]bool)
	var pages []ResolvedPage
	for _, sec := range sections {
		for _, f := range sec.Files {
			if seen[f] {
				continue
			}
			seen[f] = true

			if exists(f) {
				pages = append(pages, ResolvedPage(f))
				continue
			}

			missing := fmt.Errorf("%w: %q (role %q)", ErrMissingInput, f, sec.Role)
			switch cfg.policy {
			case MissingFail:
				return nil, missing
			case MissingWarn:
				if cfg.warn != nil {
					cfg.warn(missing)
				}
			}
		}
	}
	return pages, nil
}

// isPattern reports whether a file entry uses glob syntax.
func isPattern(entry string) bool {
	return strings.ContainsAny(entry, "*?[{")
}

// ExpandSections replaces glob entries with the matching names from listing,
// in lexical order. Literal entries are kept as declared. An entry naming a
// listed file exactly is literal even when it contains glob characters, so
// "report[1].html" selects that file rather than "report1.html". A pattern
// matching nothing is kept verbatim so that Resolve treats it as a missing
// input. A file produced twice within one section keeps its first position.
func ExpandSections(sections []RoleSection, listing []string) ([]RoleSection, error) {
	sorted := append([]string(nil), listing...)
	sort.Strings(sorted)
	listed := make(map[string]bool, len(listing))
	for _, name := range listing {
		listed[name] = true
	}

	out := make([]RoleSection, len(sections))
	for i, sec := range sections {
		files := make([]string, 0, len(sec.Files))
		inSection := make(map[string]bool, len(sec.Files))
		add := func(f string) {
			if !inSection[f] {
				inSection[f] = true
				files = append(files, f)
			}
		}

		for _, entry := range sec.Files {
			if !isPattern(entry) || listed[entry] {
				add(entry)
				continue
			}
			g, err := glob.Compile(entry, '/')
			if err != nil {
				return nil, fmt.Errorf("%w: %q in role %q: %v", ErrInvalidPattern, entry, sec.Role, err)
			}
			matched := false
			for _, name := range sorted {
				if g.Match(name) {
					add(name)
					matched = true
				}
			}
			if !matched {
				add(entry)
			}
		}
		out[i] = RoleSection{Role: sec.Role, Notes: sec.Notes, Files: files}
	}
	return out, nil
}

// DirSource is a pages source backed by a directory of static documents.
type DirSource struct {
	dir string
}

// OpenDirSource checks that dir exists and is a directory.
func OpenDirSource(dir string) (*DirSource, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceDir, abs)
	}
	return &DirSource{dir: abs}, nil
}

// Dir returns the absolute source directory.
func (d *DirSource) Dir() string {
	return d.dir
}

// Path returns the absolute path of a page inside the source.
func (d *DirSource) Path(name string) string {
	return filepath.Join(d.dir, filepath.FromSlash(name))
}

// Exists reports whether name is a regular file inside the source.
func (d *DirSource) Exists(name string) bool {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return false
	}
	info, err := os.Stat(d.Path(name))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// List returns every regular file in the source as a slash-separated
// path relative to the source directory, sorted.
func (d *DirSource) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(d.dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(d.dir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrSourceDir, d.dir, err)
	}
	sort.Strings(names)
	return names, nil
}
