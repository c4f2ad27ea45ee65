package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run dispatches a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	cmd := "capture"
	if len(args) > 0 && !isFlag(args[0]) {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "capture":
		return runCaptureCmd(ctx, args, env)
	case "doctor":
		return runDoctorCmd(args, env)
	case "init":
		return runInitCmd(args, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mockshot %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// isFlag reports whether arg looks like a flag rather than a command.
func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-' && arg != "-h" && arg != "--help" && arg != "--version"
}
