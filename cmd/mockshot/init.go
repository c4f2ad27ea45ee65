package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/mockshot/internal/config"
	"github.com/alnah/mockshot/internal/filelock"
	"github.com/alnah/mockshot/internal/fileutil"
	"github.com/alnah/mockshot/internal/yamlutil"
)

// ErrWriteConfig marks a failure to write the starter config.
var ErrWriteConfig = errors.New("failed to write config")

const configHeader = "# mockshot configuration. Run 'mockshot help capture' for the flags\n" +
	"# overriding these values.\n"

// runInitCmd writes a starter mockshot.yaml holding the built-in defaults.
func runInitCmd(args []string, env *Environment) int {
	flags, err := parseInitFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if err := writeStarterConfig(flags.path, flags.force); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	fmt.Fprintf(env.Stdout, "✓ %s\n", flags.path)
	return ExitSuccess
}

// writeStarterConfig marshals DefaultConfig to path.
func writeStarterConfig(path string, force bool) error {
	if !force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", ErrWriteConfig, path)
	}

	data, err := yamlutil.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteConfig, err)
	}
	data = append([]byte(configHeader), data...)

	if err := filelock.AtomicWrite(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteConfig, err)
	}
	return nil
}
