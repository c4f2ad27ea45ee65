package mockshot

import "time"

// Default timing.
const (
	// DefaultTimeout bounds each navigation, screenshot and print call.
	// Zero waits forever.
	DefaultTimeout = 30 * time.Second
)

// generatorConfig holds Generator settings applied by options.
type generatorConfig struct {
	timeout        time.Duration
	settle         time.Duration
	assetPath      string
	missing        MissingPolicy
	browserOpts    []BrowserOption
	galleryOpts    []GalleryOption
	surfaceFactory SurfaceFactory
	renderer       DocumentRenderer
	reporter       Reporter
}

// Option configures a Generator.
type Option func(*generatorConfig)

// WithTimeout bounds each blocking browser call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *generatorConfig) {
		c.timeout = d
	}
}

// WithSettleDelay sets the wait between the load event and the screenshot.
func WithSettleDelay(d time.Duration) Option {
	return func(c *generatorConfig) {
		c.settle = d
	}
}

// WithAssetPath overrides the gallery template and stylesheet from a directory
// laid out as styles/gallery.css and templates/gallery.html.
func WithAssetPath(path string) Option {
	return func(c *generatorConfig) {
		c.assetPath = path
	}
}

// WithMissingPolicy sets how declared-but-absent pages are handled.
func WithMissingPolicy(p MissingPolicy) Option {
	return func(c *generatorConfig) {
		c.missing = p
	}
}

// WithBrowserOptions configures the Chrome instance.
func WithBrowserOptions(opts ...BrowserOption) Option {
	return func(c *generatorConfig) {
		c.browserOpts = append(c.browserOpts, opts...)
	}
}

// WithGalleryOptions configures the gallery document.
func WithGalleryOptions(opts ...GalleryOption) Option {
	return func(c *generatorConfig) {
		c.galleryOpts = append(c.galleryOpts, opts...)
	}
}

// WithReporter receives progress and warnings.
func WithReporter(r Reporter) Option {
	return func(c *generatorConfig) {
		c.reporter = r
	}
}

// WithSurfaceFactory replaces the browser-backed capture surface.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(c *generatorConfig) {
		c.surfaceFactory = f
	}
}

// WithDocumentRenderer replaces the browser-backed PDF renderer.
func WithDocumentRenderer(r DocumentRenderer) Option {
	return func(c *generatorConfig) {
		c.renderer = r
	}
}
