package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alnah/mockshot"
)

// ---------------------------------------------------------------------------
// TestConsole - Progress lines per verbosity level
// ---------------------------------------------------------------------------

func TestConsole(t *testing.T) {
	t.Parallel()

	rec := &mockshot.CaptureRecord{
		Title:        "admin.html – desktop",
		OutputPath:   "out/admin_desktop.png",
		ViewportKind: "desktop",
		SourceFile:   "admin.html",
	}

	tests := []struct {
		name       string
		level      int
		wantOut    []string
		notOut     []string
		wantErrOut string
	}{
		{
			name:       "normal",
			level:      levelNormal,
			wantOut:    []string{"✓ out/admin_desktop.png\n", "✓ out/index.html\n"},
			notOut:     []string{"admin.html – desktop", "detail"},
			wantErrOut: "warning: missing.html\n",
		},
		{
			name:       "verbose",
			level:      levelVerbose,
			wantOut:    []string{"✓ out/admin_desktop.png (admin.html – desktop)\n", "detail 3\n"},
			wantErrOut: "warning: missing.html\n",
		},
		{
			name:   "quiet",
			level:  levelQuiet,
			notOut: []string{"✓"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			c := newConsole(&out, &errOut, tt.level, false)
			c.Captured(rec)
			c.Wrote("out/index.html")
			c.Warn(errors.New("missing.html"))
			c.Verbose("detail %d", 3)

			for _, s := range tt.wantOut {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notOut {
				assert.NotContains(t, out.String(), s)
			}
			assert.Equal(t, tt.wantErrOut, errOut.String())
		})
	}
}

func TestConsole_ErrorAlwaysShown(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer
	c := newConsole(&bytes.Buffer{}, &errOut, levelQuiet, false)
	c.Error(errors.New("boom"), "\n  hint: try again")

	assert.Equal(t, "error: boom\n  hint: try again\n", errOut.String())
}

func TestConsole_Color(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := newConsole(&out, &bytes.Buffer{}, levelNormal, true)
	c.Wrote("index.html")

	assert.Contains(t, out.String(), "\x1b[")
}

// ---------------------------------------------------------------------------
// TestWantColor - Colour switches
// ---------------------------------------------------------------------------

func TestWantColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		terminal bool
		noColor  bool
		vars     map[string]string
		want     bool
	}{
		{"terminal", true, false, nil, true},
		{"not a terminal", false, false, nil, false},
		{"flag", true, true, nil, false},
		{"NO_COLOR", true, false, map[string]string{"NO_COLOR": "1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(tt.vars)
			env.Terminal = tt.terminal
			assert.Equal(t, tt.want, wantColor(env, tt.noColor))
		})
	}
}
