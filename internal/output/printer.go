// Package output provides terminal output formatting utilities for the uv
// CLI. Status lines go to a diagnostic stream (stderr by default) so stdout
// stays clean for machine consumption.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// Printer writes status lines to the diagnostic stream.
type Printer struct {
	w     io.Writer
	isTTY bool
}

// NewPrinter returns a printer writing to stderr, with TTY detection for
// spinner suppression.
func NewPrinter() *Printer {
	return &Printer{
		w:     os.Stderr,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewPrinterTo returns a printer writing to w. Spinners are disabled since
// w is not assumed to be a terminal. Used by tests.
func NewPrinterTo(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer exposes the underlying diagnostic stream.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Statusf writes a status line, highlighting interpolated values in cyan.
func (p *Printer) Statusf(format string, args ...any) {
	highlighted := make([]any, len(args))
	for i, arg := range args {
		highlighted[i] = cyan(fmt.Sprint(arg))
	}
	fmt.Fprintf(p.w, format+"\n", highlighted...)
}

// Warnf writes a warning line prefixed with a yellow label.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", yellow("warning:"), fmt.Sprintf(format, args...))
}

// StartSpinner shows a spinner with the given message while a blocking
// operation runs, returning a stop function. On non-TTY streams the message
// is printed once and the stop function is a no-op.
func (p *Printer) StartSpinner(message string) func() {
	if !p.isTTY {
		fmt.Fprintf(p.w, "%s...\n", message)
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(p.w))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
