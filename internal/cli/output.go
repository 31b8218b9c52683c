package cli

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorGray    = "\033[90m"
)

// Output formatting helpers. Informational output goes to stdout, errors and
// warnings to stderr so that rendered previews can be piped.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Fprintf(stdout, "✓ %s\n", msg)
	} else {
		fmt.Fprintf(stdout, "%s✓%s %s\n", colorGreen, colorReset, msg)
	}
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Fprintf(stderr, "⚠ %s\n", msg)
	} else {
		fmt.Fprintf(stderr, "%s⚠%s %s\n", colorYellow, colorReset, msg)
	}
}

// printErrorMsg prints an error message (different from printError which takes error type)
func printErrorMsg(msg string) {
	if globalNoColor {
		fmt.Fprintf(stderr, "✗ %s\n", msg)
	} else {
		fmt.Fprintf(stderr, "%s✗%s %s\n", colorRed, colorReset, msg)
	}
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Fprintf(stdout, "=== %s ===\n", title)
	} else {
		fmt.Fprintf(stdout, "%s=== %s ===%s\n", colorMagenta, title, colorReset)
	}
}

// dim renders secondary text such as template sources.
func dim(s string) string {
	if globalNoColor {
		return s
	}
	return colorGray + s + colorReset
}
