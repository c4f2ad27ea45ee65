package mockshot

import (
	"context"
	"errors"
)

// Sentinel errors for library operations.
var (
	// ErrMissingInput marks a declared page absent from the pages source.
	// Non-fatal unless the catalog runs with MissingFail.
	ErrMissingInput = errors.New("declared page not found in source")

	ErrSourceDir      = errors.New("pages source directory not usable")
	ErrNavigation     = errors.New("failed to load page")
	ErrCaptureWrite   = errors.New("failed to write capture")
	ErrGalleryWrite   = errors.New("failed to write gallery")
	ErrDocumentRender = errors.New("failed to render document")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrOutputLocked   = errors.New("output directory is locked by another run")
	ErrOutputConflict = errors.New("two pages map to the same capture file")

	// Validation errors.
	ErrInvalidViewport      = errors.New("invalid viewport")
	ErrDuplicateViewport    = errors.New("duplicate viewport name")
	ErrInvalidRoleSection   = errors.New("invalid role section")
	ErrInvalidPattern       = errors.New("invalid file pattern")
	ErrInvalidMissingPolicy = errors.New("invalid missing-file policy")
	ErrNoViewports          = errors.New("at least one viewport is required")
	ErrNoRoles              = errors.New("at least one role section is required")
)

// interrupted reports a cancelled run as ctx's error instead of err, so a
// step aborted by cancellation is not mistaken for a page or print failure.
func interrupted(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
