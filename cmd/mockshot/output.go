package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/alnah/mockshot"
)

// Verbosity levels for console output.
const (
	levelQuiet = iota
	levelNormal
	levelVerbose
)

// console prints progress lines and implements mockshot.Reporter.
type console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	level  int
	ok     *color.Color
	warn   *color.Color
	fail   *color.Color
	faint  *color.Color
}

var _ mockshot.Reporter = (*console)(nil)

// newConsole creates a console writer. Colour is used only when useColor
// is true.
func newConsole(out, errOut io.Writer, level int, useColor bool) *console {
	c := &console{
		out:    out,
		errOut: errOut,
		level:  level,
		ok:     color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		fail:   color.New(color.FgRed, color.Bold),
		faint:  color.New(color.Faint),
	}
	for _, col := range []*color.Color{c.ok, c.warn, c.fail, c.faint} {
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// wantColor decides whether console output is coloured.
func wantColor(env *Environment, noColor bool) bool {
	if noColor || env.Getenv("NO_COLOR") != "" {
		return false
	}
	return env.Terminal
}

func levelFor(f commonFlags) int {
	switch {
	case f.quiet:
		return levelQuiet
	case f.verbose:
		return levelVerbose
	default:
		return levelNormal
	}
}

// Captured prints one line per written raster.
func (c *console) Captured(rec *mockshot.CaptureRecord) {
	if c.level == levelQuiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.level == levelVerbose {
		fmt.Fprintf(c.out, "%s %s %s\n", c.ok.Sprint("✓"), rec.OutputPath, c.faint.Sprintf("(%s)", rec.Title))
		return
	}
	fmt.Fprintf(c.out, "%s %s\n", c.ok.Sprint("✓"), rec.OutputPath)
}

// Wrote prints one line per gallery or document file.
func (c *console) Wrote(path string) {
	if c.level == levelQuiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", c.ok.Sprint("✓"), path)
}

// Warn prints a non-fatal problem to stderr.
func (c *console) Warn(err error) {
	if c.level == levelQuiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.errOut, "%s %v\n", c.warn.Sprint("warning:"), err)
}

// Verbose prints a detail line in verbose mode only.
func (c *console) Verbose(format string, args ...any) {
	if c.level != levelVerbose {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.faint.Sprintf(format, args...))
}

// Error prints a fatal error to stderr. Always shown.
func (c *console) Error(err error, hint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.errOut, "%s %v%s\n", c.fail.Sprint("error:"), err, hint)
}
