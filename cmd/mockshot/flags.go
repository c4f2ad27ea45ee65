package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	noColor bool
}

// captureFlags holds flags for the capture command.
// Duration and policy flags stay strings so "unset" differs from zero.
type captureFlags struct {
	common  commonFlags
	source  string
	output  string
	timeout string
	settle  string
	missing string
	assets  string
	noPDF   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// parseCaptureFlags parses capture command flags.
// Positional arguments are rejected.
func parseCaptureFlags(args []string, usage io.Writer) (*captureFlags, error) {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &captureFlags{}

	fs.StringVarP(&f.source, "source", "s", "", "pages directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.timeout, "timeout", "", "per-page load timeout (e.g. 30s, 0 = none)")
	fs.StringVar(&f.settle, "settle", "", "delay after load before capturing (e.g. 250ms)")
	fs.StringVar(&f.missing, "missing", "", "missing page policy: silent, warn, fail")
	fs.StringVar(&f.assets, "assets", "", "directory overriding the embedded gallery assets")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "stop after writing the gallery")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printCaptureUsage(usage) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	if f.common.quiet && f.common.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json bool
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, usage io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &doctorFlags{}
	fs.BoolVar(&f.json, "json", false, "output as JSON")
	fs.Usage = func() { printDoctorUsage(usage) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, nil
}

// initFlags holds flags for the init command.
type initFlags struct {
	path  string
	force bool
}

// parseInitFlags parses init command flags.
func parseInitFlags(args []string, usage io.Writer) (*initFlags, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &initFlags{}
	fs.StringVarP(&f.path, "output", "o", "mockshot.yaml", "file to write")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	fs.Usage = func() { printInitUsage(usage) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}
