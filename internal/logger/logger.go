package logger

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI escape codes; disabled automatically when stdout is not a terminal.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func colorize(code, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return code + s + reset
}

func line(code, tag, msg string) {
	fmt.Fprintf(os.Stdout, "%s %s\n", colorize(code, fmt.Sprintf("[%s]", tag)), msg)
}

// Info prints a neutral progress message.
func Info(tag, msg string) { line(cyan, tag, msg) }

// Success prints a completed-step message.
func Success(tag, msg string) { line(green, tag, msg) }

// Warn prints a recoverable-problem message.
func Warn(tag, msg string) { line(yellow, tag, msg) }

// Error prints a failure message.
func Error(tag, msg string) { line(bold+red, tag, msg) }

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Fprintln(os.Stdout, colorize(bold, "prunkit "+version))
}

// Section prints a visual divider with a title.
func Section(title string) {
	fmt.Fprintf(os.Stdout, "\n%s\n", colorize(bold, "== "+title))
}

// Stats prints a key/value pair aligned for scan summaries.
func Stats(key string, value interface{}) {
	fmt.Fprintf(os.Stdout, "  %s %v\n", colorize(dim, key+":"), value)
}
