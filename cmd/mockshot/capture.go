package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/mockshot"
	"github.com/alnah/mockshot/internal/config"
	"github.com/alnah/mockshot/internal/hints"
)

// runCaptureCmd runs the capture pipeline and returns an exit code.
func runCaptureCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseCaptureFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	out := newConsole(env.Stdout, env.Stderr, levelFor(flags.common), wantColor(env, flags.common.noColor))
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := resolveConfig(flags, loadEnvConfig(env.Getenv), out)
	if err != nil {
		out.Error(err, hintFor(err))
		return exitCodeFor(err)
	}

	job, opts, err := buildJob(cfg, flags)
	if err != nil {
		out.Error(err, hintFor(err))
		return exitCodeFor(err)
	}
	opts = append(opts, mockshot.WithReporter(out))
	opts = append(opts, env.GeneratorOptions...)

	out.Verbose("source %s, output %s, %d role(s), %d viewport(s)",
		job.SourceDir, job.OutputDir, len(job.Sections), len(job.Viewports))

	res, err := mockshot.Generate(ctx, job, opts...)
	if err != nil {
		out.Error(err, hintFor(err))
		return exitCodeFor(err)
	}

	printSummary(out, res)
	return ExitSuccess
}

// resolveConfig loads the config file (or defaults) and layers env and
// flag overrides on top.
func resolveConfig(flags *captureFlags, envCfg *envConfig, out *console) (*config.Config, error) {
	explicit := flags.common.config
	if explicit == "" {
		explicit = envCfg.ConfigPath
	}

	path, found, err := config.Locate(explicit)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if found {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		out.Verbose("config %s", path)
	} else {
		out.Verbose("no config file, using built-in defaults")
	}

	applyEnvConfig(envCfg, cfg)
	applyFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides config values with flags that were set.
func applyFlags(flags *captureFlags, cfg *config.Config) {
	if flags.source != "" {
		cfg.Source = flags.source
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.settle != "" {
		cfg.SettleDelay = flags.settle
	}
	if flags.missing != "" {
		cfg.Missing = flags.missing
	}
	if flags.assets != "" {
		cfg.Assets.BasePath = flags.assets
	}
}

// buildJob converts a validated config into a job and generator options.
func buildJob(cfg *config.Config, flags *captureFlags) (mockshot.Job, []mockshot.Option, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return mockshot.Job{}, nil, err
	}
	settle, err := cfg.SettleDuration()
	if err != nil {
		return mockshot.Job{}, nil, err
	}
	missing, err := mockshot.ParseMissingPolicy(cfg.Missing)
	if err != nil {
		return mockshot.Job{}, nil, err
	}

	job := mockshot.Job{
		SourceDir: cfg.Source,
		OutputDir: cfg.Output,
		Sections:  toSections(cfg.Roles),
		Viewports: toViewports(cfg.Viewports),
		SkipPDF:   flags.noPDF,
	}

	opts := []mockshot.Option{
		mockshot.WithTimeout(timeout),
		mockshot.WithSettleDelay(settle),
		mockshot.WithMissingPolicy(missing),
		mockshot.WithAssetPath(cfg.Assets.BasePath),
		mockshot.WithGalleryOptions(
			mockshot.WithGalleryTitle(cfg.Title),
			mockshot.WithGalleryLang(cfg.Lang),
			mockshot.WithGalleryIntro(cfg.Intro),
			mockshot.WithNarrowKinds(cfg.NarrowKinds...),
		),
	}
	return job, opts, nil
}

func toSections(roles []config.RoleConfig) []mockshot.RoleSection {
	sections := make([]mockshot.RoleSection, len(roles))
	for i, r := range roles {
		sections[i] = mockshot.RoleSection{
			Role:  r.Role,
			Notes: r.Notes,
			Files: append([]string(nil), r.Files...),
		}
	}
	return sections
}

func toViewports(vps []config.ViewportConfig) []mockshot.Viewport {
	out := make([]mockshot.Viewport, len(vps))
	for i, v := range vps {
		out[i] = mockshot.Viewport{Name: v.Name, Width: v.Width, Height: v.Height}
	}
	return out
}

// printSummary reports totals in verbose mode.
func printSummary(out *console, res *mockshot.Result) {
	out.Verbose("%d page(s), %d capture(s), %d gallery section(s)",
		len(res.Pages), len(res.Records), len(res.Gallery.Sections))
	if res.DocumentPath != "" {
		out.Verbose("document: %d page(s)", res.DocumentPages)
	}
	out.Verbose("done in %s", res.Duration.Round(time.Millisecond))
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mockshot.ErrBrowserConnect), errors.Is(err, mockshot.ErrPageCreate):
		return hints.ForBrowserConnect()
	case errors.Is(err, mockshot.ErrNavigation):
		return hints.ForNavigation()
	case errors.Is(err, mockshot.ErrSourceDir):
		return hints.ForSourceDir()
	case errors.Is(err, mockshot.ErrOutputLocked):
		return hints.ForOutputLocked()
	case errors.Is(err, mockshot.ErrCaptureWrite):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths())
	default:
		return ""
	}
}
