package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"version"}, ExitSuccess, "mockshot dev", ""},
		{"version flag", []string{"--version"}, ExitSuccess, "mockshot dev", ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"short help", []string{"-h"}, ExitSuccess, "Commands:", ""},
		{"help capture", []string{"help", "capture"}, ExitSuccess, "Usage: mockshot capture", ""},
		{"help doctor", []string{"help", "doctor"}, ExitSuccess, "Usage: mockshot doctor", ""},
		{"help init", []string{"help", "init"}, ExitSuccess, "Usage: mockshot init", ""},
		{"unknown command", []string{"shoot"}, ExitUsage, "", `unknown command "shoot"`},
		{"flags default to capture", []string{"--bogus"}, ExitUsage, "", "invalid usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := run(context.Background(), tt.args, env)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stdout.String(), tt.wantStdout)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}

func TestIsFlag(t *testing.T) {
	t.Parallel()

	assert.True(t, isFlag("-o"))
	assert.True(t, isFlag("--no-pdf"))
	assert.False(t, isFlag("capture"))
	assert.False(t, isFlag("-h"))
	assert.False(t, isFlag("--version"))
	assert.False(t, isFlag(""))
}
