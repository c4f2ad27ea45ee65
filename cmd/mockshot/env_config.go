package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/mockshot/internal/config"
)

// envPrefix starts every mockshot environment variable.
const envPrefix = "MOCKSHOT_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing mockshot.yaml.
type envConfig struct {
	ConfigPath string // MOCKSHOT_CONFIG: config file path
	Source     string // MOCKSHOT_SOURCE: pages directory
	Output     string // MOCKSHOT_OUTPUT: output directory
	Timeout    string // MOCKSHOT_TIMEOUT: per-page timeout
	Settle     string // MOCKSHOT_SETTLE: settle delay
	Missing    string // MOCKSHOT_MISSING: silent, warn, fail
}

// knownEnvVars lists valid MOCKSHOT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MOCKSHOT_CONFIG":  true,
	"MOCKSHOT_SOURCE":  true,
	"MOCKSHOT_OUTPUT":  true,
	"MOCKSHOT_TIMEOUT": true,
	"MOCKSHOT_SETTLE":  true,
	"MOCKSHOT_MISSING": true,
}

// loadEnvConfig reads the recognized MOCKSHOT_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("MOCKSHOT_CONFIG"),
		Source:     getenv("MOCKSHOT_SOURCE"),
		Output:     getenv("MOCKSHOT_OUTPUT"),
		Timeout:    getenv("MOCKSHOT_TIMEOUT"),
		Settle:     getenv("MOCKSHOT_SETTLE"),
		Missing:    getenv("MOCKSHOT_MISSING"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MOCKSHOT_* variables.
// Helps catch typos like MOCKSHOT_SOURCES.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with set environment variables.
// CLI flags are applied afterwards, giving: flags > env > file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Source != "" {
		cfg.Source = env.Source
	}
	if env.Output != "" {
		cfg.Output = env.Output
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	if env.Settle != "" {
		cfg.SettleDelay = env.Settle
	}
	if env.Missing != "" {
		cfg.Missing = env.Missing
	}
}
