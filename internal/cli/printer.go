package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Printer renders human-facing CLI output. Quiet suppresses everything but
// errors, warnings and tables.
type Printer struct {
	Quiet bool
	Out   io.Writer
}

// DefaultPrinter writes to stdout.
var DefaultPrinter = &Printer{}

func init() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}
}

func (p *Printer) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Header prints a full-width header.
func (p *Printer) Header(text string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), pterm.DefaultHeader.Sprint(text))
}

// Section prints a section title.
func (p *Printer) Section(text string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.DefaultSection.Sprint(text))
}

// Step prints a progress line.
func (p *Printer) Step(text string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), pterm.Cyan("→ ")+text)
}

// Info prints an informational line.
func (p *Printer) Info(text string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.Info.Sprintln(text))
}

// Success prints a success line.
func (p *Printer) Success(text string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.Success.Sprintln(text))
}

// Warn prints a warning line, even in quiet mode.
func (p *Printer) Warn(text string) {
	fmt.Fprint(p.out(), pterm.Warning.Sprintln(text))
}

// Error prints an error line, even in quiet mode.
func (p *Printer) Error(text string) {
	fmt.Fprint(p.out(), pterm.Error.Sprintln(text))
}

// Table prints rows with the first row as header.
func (p *Printer) Table(data [][]string) {
	p.table(data, false)
}

// TableBoxed prints rows with the first row as header inside a box.
func (p *Printer) TableBoxed(data [][]string) {
	p.table(data, true)
}

func (p *Printer) table(data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed(boxed).WithData(data).Srender()
	if err != nil {
		p.Error(fmt.Sprintf("failed to render table: %v", err))
		return
	}
	fmt.Fprintln(p.out(), out)
}

// SpinnerStart shows a spinner until the returned function is called with
// the outcome.
func (p *Printer) SpinnerStart(text string) func(ok bool, msg string) {
	if p.Quiet {
		return func(bool, string) {}
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(p.out()).Start(text)
	if err != nil {
		p.Step(text)
		return func(ok bool, msg string) {
			if ok {
				p.Success(msg)
			} else {
				p.Error(msg)
			}
		}
	}
	return func(ok bool, msg string) {
		if ok {
			spinner.Success(msg)
		} else {
			spinner.Fail(msg)
		}
	}
}

// Printf writes formatted text unless quiet.
func (p *Printer) Printf(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.out(), format, args...)
}

// Println writes a line unless quiet.
func (p *Printer) Println(args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), args...)
}

// Package-level helpers write through DefaultPrinter.

func Header(text string) { DefaultPrinter.Header(text) }
func Section(text string) { DefaultPrinter.Section(text) }
func Step(text string) { DefaultPrinter.Step(text) }
func Info(text string) { DefaultPrinter.Info(text) }
func Success(text string) { DefaultPrinter.Success(text) }
func Warn(text string) { DefaultPrinter.Warn(text) }
func Error(text string) { DefaultPrinter.Error(text) }
func Table(data [][]string) { DefaultPrinter.Table(data) }
func TableBoxed(data [][]string) { DefaultPrinter.TableBoxed(data) }
func Green(text string) string { return pterm.Green(text) }
func Yellow(text string) string { return pterm.Yellow(text) }
func Red(text string) string { return pterm.Red(text) }
func Cyan(text string) string { return pterm.Cyan(text) }
