package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/mockshot"
	"github.com/alnah/mockshot/internal/assets"
	"github.com/alnah/mockshot/internal/config"
)

// Exit codes for the mockshot CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Gallery (and document) written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or job
	ExitIO      = 3 // Source missing, output not writable
	ExitBrowser = 4 // Chrome, navigation or printing
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interrupted runs (exit 1), whatever step they stopped in
	if errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	// Browser errors (exit 4)
	if errors.Is(err, mockshot.ErrBrowserConnect) ||
		errors.Is(err, mockshot.ErrPageCreate) ||
		errors.Is(err, mockshot.ErrNavigation) ||
		errors.Is(err, mockshot.ErrDocumentRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mockshot.ErrSourceDir) ||
		errors.Is(err, mockshot.ErrMissingInput) ||
		errors.Is(err, mockshot.ErrCaptureWrite) ||
		errors.Is(err, mockshot.ErrGalleryWrite) ||
		errors.Is(err, mockshot.ErrOutputLocked) ||
		errors.Is(err, ErrWriteConfig) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mockshot.ErrInvalidViewport) ||
		errors.Is(err, mockshot.ErrDuplicateViewport) ||
		errors.Is(err, mockshot.ErrNoViewports) ||
		errors.Is(err, mockshot.ErrInvalidRoleSection) ||
		errors.Is(err, mockshot.ErrNoRoles) ||
		errors.Is(err, mockshot.ErrInvalidPattern) ||
		errors.Is(err, mockshot.ErrInvalidMissingPolicy) ||
		errors.Is(err, mockshot.ErrOutputConflict) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
