package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alnah/mockshot"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	Terminal bool // stdout is an interactive terminal

	// GeneratorOptions are appended after the options built from flags
	// and config. Tests use them to swap the browser for fakes.
	GeneratorOptions []mockshot.Option
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	fd := os.Stdout.Fd()
	return &Environment{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		Terminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}
