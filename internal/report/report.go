// Package report provides the verbose tracing and error framing used by
// cmd/mipsasm's -v flag: pretty-printed structure dumps via pp/v3,
// colorized only when stderr is actually a terminal, and a plain
// "error:" line on stderr for failures.
//
// Grounded on the reference repo's own use of pp/v3 for debug output
// (shared/assembler/assembler.go's pp.Fprintf(os.Stderr, ...) tracing
// calls, debug/objdump.go's pp.Println(obj)) and its go-colorable/
// go-isatty pairing declared alongside pp/v3 in every module that
// imports it.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var stderr io.Writer = colorable.NewColorableStderr()

var tracer = func() *pp.PrettyPrinter {
	t := pp.New()
	t.SetOutput(stderr)
	t.SetColoringEnabled(isatty.IsTerminal(os.Stderr.Fd()))
	return t
}()

// Verbose gates Dump and Section. It is set once by the CLI from the -v
// flag; left false, both are no-ops. Errorf is not gated.
var Verbose bool

// Dump pretty-prints label, a value, and a trailing newline to stderr
// when Verbose is set. It is the verbose-mode equivalent of the
// reference implementation's stage-by-stage System.out prints.
func Dump(label string, v interface{}) {
	if !Verbose {
		return
	}
	fmt.Fprintf(stderr, "%s:\n", label)
	tracer.Println(v)
}

// Section prints a section header line (e.g. "Assembly Result") to
// stderr when Verbose is set.
func Section(title string) {
	if !Verbose {
		return
	}
	fmt.Fprintf(stderr, "\n== %s ==\n", title)
}

// Errorf prints a framed error message to stderr, regardless of
// Verbose -- errors are always reported, only tracing is gated.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "error: %s\n", fmt.Sprintf(format, args...))
}
