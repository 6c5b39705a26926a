package runner

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter receives the outcome of every test as it happens
type Reporter interface {
	// Success is called once per passing test with the last reference checked
	Success(id int, reference string)

	// Failure is called when a reference does not match the simulator output
	Failure(id int, reference string, diff string)

	// Error is called when a test could not be compared (missing fixtures,
	// simulator crash, etc)
	Error(id int, err error)
}

// ConsoleReporter prints "Success: <reference>" and "Fail: <reference>" lines
type ConsoleReporter struct {
	out     io.Writer
	success *color.Color
	fail    *color.Color
}

// NewConsoleReporter returns a reporter writing to out. Markers are colored if colored is true.
func NewConsoleReporter(out io.Writer, colored bool) *ConsoleReporter {
	reporter := &ConsoleReporter{
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
	}

	if colored {
		reporter.success.EnableColor()
		reporter.fail.EnableColor()
	} else {
		reporter.success.DisableColor()
		reporter.fail.DisableColor()
	}

	return reporter
}

func (r *ConsoleReporter) Success(id int, reference string) {
	fmt.Fprintf(r.out, "%s: %s\n", r.success.Sprint("Success"), reference)
}

func (r *ConsoleReporter) Failure(id int, reference string, diff string) {
	fmt.Fprintf(r.out, "%s: %s\n\n%s\n", r.fail.Sprint("Fail"), reference, diff)
}

func (r *ConsoleReporter) Error(id int, err error) {
	fmt.Fprintf(r.out, "%s: test %d\n\n%v\n", r.fail.Sprint("Fail"), id, err)
}

// Discard is a reporter that ignores everything
type Discard struct{}

func (Discard) Success(int, string)         {}
func (Discard) Failure(int, string, string) {}
func (Discard) Error(int, error)            {}
