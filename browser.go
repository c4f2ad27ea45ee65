package mockshot

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/mockshot/internal/process"
)

// Browser owns one headless Chrome instance for a whole run.
// Rod downloads Chromium on first launch if no browser is found.
// The capture surface and the print page are both opened from it.
type Browser struct {
	controlURL string
	bin        string
	noSandbox  bool

	browser  *rod.Browser
	launcher *launcher.Launcher
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithControlURL connects to an already running Chrome DevTools endpoint
// instead of launching a new process.
func WithControlURL(u string) BrowserOption {
	return func(b *Browser) {
		b.controlURL = u
	}
}

// WithBrowserBin uses a specific Chrome binary.
func WithBrowserBin(bin string) BrowserOption {
	return func(b *Browser) {
		b.bin = bin
	}
}

// NewBrowser creates a Browser. Chrome is started lazily on first use.
// ROD_BROWSER_BIN selects a binary; the sandbox is disabled when
// ROD_NO_SANDBOX=1, CI=true, or a custom binary is set (containers).
func NewBrowser(opts ...BrowserOption) *Browser {
	b := &Browser{
		bin: os.Getenv("ROD_BROWSER_BIN"),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.noSandbox = os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || b.bin != ""
	return b
}

// ensure lazily launches or connects to the browser.
func (b *Browser) ensure() error {
	if b.browser != nil {
		return nil
	}

	u := b.controlURL
	if u == "" {
		l := launcher.New().Headless(true)
		if b.bin != "" {
			l = l.Bin(b.bin)
		}
		if b.noSandbox {
			l = l.NoSandbox(true)
		}

		launched, err := l.Launch()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}
		b.launcher = l
		u = launched
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		b.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.browser = browser
	return nil
}

// newPage opens a blank tab bound to ctx.
func (b *Browser) newPage(ctx context.Context) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.ensure(); err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return page, nil
}

// Close shuts the browser down and kills the launched process tree.
// Safe to call more than once.
func (b *Browser) Close() error {
	var errs []error
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
		b.browser = nil
	}
	b.killLauncher()
	return errors.Join(errs...)
}

// killLauncher terminates a Chrome process started by this Browser.
func (b *Browser) killLauncher() {
	if b.launcher == nil {
		return
	}
	if pid := b.launcher.PID(); pid > 0 {
		process.KillTree(pid)
	}
	b.launcher.Kill()
	b.launcher.Cleanup()
	b.launcher = nil
}
