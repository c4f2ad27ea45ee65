package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/mockshot/internal/config"
	"github.com/alnah/mockshot/internal/fileutil"
	"github.com/alnah/mockshot/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Chrome   chromeInfo  `json:"chrome"`
	Env      envInfo     `json:"environment"`
	Project  projectInfo `json:"project"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	NoSandbox  string `json:"rod_no_sandbox"`
	BrowserBin string `json:"rod_browser_bin"`
}

// projectInfo describes the config and pages the capture command would use.
type projectInfo struct {
	ConfigPath  string `json:"config_path,omitempty"`
	Source      string `json:"source"`
	SourceFound bool   `json:"source_found"`
	Pages       int    `json:"pages"`
	Missing     int    `json:"missing"`
}

// lookPath locates Chrome. Replaced in tests.
var lookPath = launcher.LookPath

// chromeVersion runs "chrome --version". Replaced in tests.
var chromeVersion = func(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path from launcher or ROD_BROWSER_BIN
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkProject(result, env)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = lookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if !fileutil.FileExists(chromePath) {
		result.Errors = append(result.Errors, fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	version, err := chromeVersion(chromePath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	result.Chrome.Version = version
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()
	result.Env.CI = hints.InCI()

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkProject loads the config the capture command would use and counts
// the declared pages present in the source directory.
func checkProject(result *doctorResult, env *Environment) {
	envCfg := loadEnvConfig(env.Getenv)

	path, found, err := config.Locate(envCfg.ConfigPath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	cfg := config.DefaultConfig()
	if found {
		if cfg, err = config.LoadConfig(path); err != nil {
			result.Errors = append(result.Errors, err.Error())
			return
		}
		result.Project.ConfigPath = path
	}
	applyEnvConfig(envCfg, cfg)

	result.Project.Source = cfg.Source
	info, err := os.Stat(cfg.Source)
	if err != nil || !info.IsDir() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Pages directory %s not found. Use --source or set 'source'", cfg.Source))
		return
	}
	result.Project.SourceFound = true

	seen := make(map[string]bool)
	for _, role := range cfg.Roles {
		for _, f := range role.Files {
			if seen[f] || strings.ContainsAny(f, "*?[{") {
				continue
			}
			seen[f] = true
			if fileutil.FileExists(filepath.Join(cfg.Source, f)) {
				result.Project.Pages++
			} else {
				result.Project.Missing++
			}
		}
	}
	if result.Project.Missing > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d declared page(s) not found in %s", result.Project.Missing, cfg.Source))
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mockshot doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Project")
	if r.Project.ConfigPath != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Project.ConfigPath)
	} else {
		fmt.Fprintln(w, "  [OK] Config: built-in defaults")
	}
	if r.Project.SourceFound {
		fmt.Fprintf(w, "  [OK] Pages: %d found in %s\n", r.Project.Pages, r.Project.Source)
	} else if r.Project.Source != "" {
		fmt.Fprintf(w, "  [WARN] Pages: %s not found\n", r.Project.Source)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to capture")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
