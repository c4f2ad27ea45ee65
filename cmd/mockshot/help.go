package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mockshot [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture every declared page at each viewport, then build an HTML")
	fmt.Fprintln(w, "gallery grouped by role and print it to an A4 PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  capture    Capture pages and build the gallery (default)")
	fmt.Fprintln(w, "  doctor     Check Chrome and project setup")
	fmt.Fprintln(w, "  init       Write a starter mockshot.yaml")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mockshot help <command>' for details on a specific command.")
}

// printCaptureUsage prints usage for the capture command.
func printCaptureUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mockshot capture [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture pages and write <output>/*.png, index.html and mockups.pdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <path>       Config file (default: ./mockshot.yaml)")
	fmt.Fprintln(w, "  -s, --source <dir>        Pages directory")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "      --assets <dir>        Override gallery template and stylesheet")
	fmt.Fprintln(w, "      --no-pdf              Stop after writing index.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture:")
	fmt.Fprintln(w, "      --timeout <d>         Per-page load timeout (0 = none)")
	fmt.Fprintln(w, "      --settle <d>          Delay after load before capturing")
	fmt.Fprintln(w, "      --missing <s>         Missing pages: silent, warn, fail")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MOCKSHOT_CONFIG, MOCKSHOT_SOURCE, MOCKSHOT_OUTPUT, MOCKSHOT_TIMEOUT,")
	fmt.Fprintln(w, "  MOCKSHOT_SETTLE, MOCKSHOT_MISSING   Override config values")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN                     Chrome binary")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1                    Disable the Chrome sandbox")
	fmt.Fprintln(w, "  NO_COLOR                            Disable colored output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mockshot doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, sandbox settings, the config file and the pages directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Output as JSON")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mockshot init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the built-in role table and viewports as a starter config.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>   File to write (default: mockshot.yaml)")
	fmt.Fprintln(w, "  -f, --force           Overwrite an existing file")
}

// runHelp prints help for the named command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "capture":
		printCaptureUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", args[0])
		printUsage(env.Stdout)
	}
}
