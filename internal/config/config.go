// Package config loads the mockshot YAML configuration: pages source,
// output directory, viewports and the role to page table.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/mockshot/internal/fileutil"
	"github.com/alnah/mockshot/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidField   = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxTitleLength    = 200
	MaxLangLength     = 35 // BCP 47 tags
	MaxIntroLength    = 20000
	MaxRoleLength     = 100
	MaxNotesLength    = 10000
	MaxFileLength     = 255
	MaxViewportLength = 50
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "mockshot"

// appDirName is the directory under the user config dir.
const appDirName = "mockshot"

// Config holds all configuration for a documentation build.
type Config struct {
	Source      string           `yaml:"source"`      // pages directory
	Output      string           `yaml:"output"`      // output directory
	Title       string           `yaml:"title"`       // gallery document title
	Lang        string           `yaml:"lang"`        // gallery html lang
	Intro       string           `yaml:"intro"`       // Markdown above the first role
	SettleDelay string           `yaml:"settleDelay"` // e.g. "250ms"
	Timeout     string           `yaml:"timeout"`     // e.g. "30s", "0" disables
	Missing     string           `yaml:"missing"`     // silent, warn, fail
	NarrowKinds []string         `yaml:"narrowKinds"` // viewports shown at half width
	Assets      AssetsConfig     `yaml:"assets"`
	Viewports   []ViewportConfig `yaml:"viewports"`
	Roles       []RoleConfig     `yaml:"roles"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ViewportConfig is one named device size.
type ViewportConfig struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RoleConfig lists the pages one role sees.
type RoleConfig struct {
	Role  string   `yaml:"role"`
	Notes string   `yaml:"notes"`
	Files []string `yaml:"files"`
}

// DefaultConfig returns the built-in back-office mockup table.
func DefaultConfig() *Config {
	return &Config{
		Source:      filepath.Join("web", "pages"),
		Output:      "mockups",
		Title:       "Mockups",
		Lang:        "es",
		SettleDelay: "250ms",
		Timeout:     "30s",
		Missing:     "warn",
		NarrowKinds: []string{"mobile"},
		Viewports:   defaultViewports(),
		Roles:       defaultRoles(),
	}
}

func defaultViewports() []ViewportConfig {
	return []ViewportConfig{
		{Name: "desktop", Width: 1440, Height: 900},
		{Name: "mobile", Width: 390, Height: 844},
	}
}

func defaultRoles() []RoleConfig {
	return []RoleConfig{
		{Role: "Administrador", Files: []string{"admin.html", "dashboard.html", "usuarios.html", "reportes.html", "ajustes.html", "alertas.html"}},
		{Role: "Vendedor", Files: []string{"vendedor.html", "productos.html", "producto.html", "inventario.html", "ventas.html", "ordenes.html"}},
		{Role: "Cliente", Files: []string{"tienda.html", "producto_publico.html", "carrito.html", "checkout.html", "pedido.html", "login_cliente.html", "cliente.html"}},
	}
}

// applyDefaults fills fields a config file left empty.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Source == "" {
		c.Source = def.Source
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.Lang == "" {
		c.Lang = def.Lang
	}
	if c.SettleDelay == "" {
		c.SettleDelay = def.SettleDelay
	}
	if c.Timeout == "" {
		c.Timeout = def.Timeout
	}
	if c.Missing == "" {
		c.Missing = def.Missing
	}
	if c.NarrowKinds == nil {
		c.NarrowKinds = def.NarrowKinds
	}
	if len(c.Viewports) == 0 {
		c.Viewports = def.Viewports
	}
	if len(c.Roles) == 0 {
		c.Roles = def.Roles
	}
}

// SettleDuration parses SettleDelay.
func (c *Config) SettleDuration() (time.Duration, error) {
	return parseDuration("settleDelay", c.SettleDelay)
}

// TimeoutDuration parses Timeout. Zero means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout)
}

// parseDuration accepts Go durations and a bare "0".
func parseDuration(field, value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a duration", ErrInvalidField, field, value)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s: must not be negative, got %s", ErrInvalidField, field, value)
	}
	return d, nil
}

// Validate checks field lengths and value ranges. Structural rules on
// roles and viewports (uniqueness, positive sizes) are enforced again by
// the library when the job runs.
func (c *Config) Validate() error {
	if err := validateFieldLength("source", c.Source, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output", c.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("title", c.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("lang", c.Lang, MaxLangLength); err != nil {
		return err
	}
	if err := validateFieldLength("intro", c.Intro, MaxIntroLength); err != nil {
		return err
	}

	if _, err := c.SettleDuration(); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	switch strings.ToLower(c.Missing) {
	case "", "silent", "warn", "fail":
		// valid
	default:
		return fmt.Errorf("%w: missing: %q (must be silent, warn, or fail)", ErrInvalidField, c.Missing)
	}

	for i, v := range c.Viewports {
		field := fmt.Sprintf("viewports[%d]", i)
		if err := validateFieldLength(field+".name", v.Name, MaxViewportLength); err != nil {
			return err
		}
		if v.Width <= 0 || v.Height <= 0 {
			return fmt.Errorf("%w: %s: dimensions must be positive, got %dx%d", ErrInvalidField, field, v.Width, v.Height)
		}
	}

	for i, r := range c.Roles {
		field := fmt.Sprintf("roles[%d]", i)
		if err := validateFieldLength(field+".role", r.Role, MaxRoleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".notes", r.Notes, MaxNotesLength); err != nil {
			return err
		}
		for j, f := range r.Files {
			if err := validateFieldLength(fmt.Sprintf("%s.files[%d]", field, j), f, MaxFileLength); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig reads, defaults and validates the config at path.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Locate returns the config file to load. An explicit path must exist.
// Otherwise it tries ./mockshot.yaml, ./mockshot.yml and the same names
// under the user config directory. found is false when nothing matched,
// in which case the built-in defaults apply.
func Locate(explicit string) (path string, found bool, err error) {
	if explicit != "" {
		if !fileutil.FileExists(explicit) {
			return "", false, fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		return explicit, true, nil
	}

	for _, candidate := range SearchPaths() {
		if fileutil.FileExists(candidate) {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// SearchPaths lists the implicit config locations in lookup order.
func SearchPaths() []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, DefaultFileName+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, DefaultFileName+ext))
		}
	}
	return paths
}
