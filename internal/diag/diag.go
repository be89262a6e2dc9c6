// Package diag renders compiler diagnostics with highlighted source
// snippets and tracks the error count for the current compilation.
//
// Reporter is the explicit sink threaded through the tokenizer and
// parser; producers never format output themselves.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/esclang/escc/internal/text"
)

// Note attaches a source span and an optional remark to a diagnostic.
type Note struct {
	Span    text.Span
	Message string
}

// Reporter streams diagnostics to a writer and counts reported errors.
// It is not safe for concurrent use; compilation is single-threaded.
type Reporter struct {
	out    io.Writer
	color  bool
	errors int
}

// exitFn is swapped out in tests; Fatal must never return.
var exitFn = os.Exit

// NewReporter builds a sink writing to out. When color is false all
// ANSI sequences are suppressed.
func NewReporter(out io.Writer, color bool) *Reporter {
	return &Reporter{out: out, color: color}
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	return r.errors
}

// ResetErrorCount clears the error counter.
func (r *Reporter) ResetErrorCount() {
	r.errors = 0
}

// Error reports an error diagnostic and increments the error counter.
func (r *Reporter) Error(message string, notes ...Note) {
	r.errors++
	r.header(ColorError, "error:", message)
	r.renderNotes(notes)
}

// Warning reports a warning diagnostic.
func (r *Reporter) Warning(message string, notes ...Note) {
	r.header(ColorWarn, "warning:", message)
	r.renderNotes(notes)
}

// Info reports an informational diagnostic.
func (r *Reporter) Info(message string, notes ...Note) {
	r.header(ColorQuote, "info:", message)
	r.renderNotes(notes)
}

// FatalError reports an irrecoverable error without terminating; the
// caller decides how to unwind.
func (r *Reporter) FatalError(message string) {
	r.header(ColorError, "fatal error:", message)
}

// Fatal reports an irrecoverable error and terminates the process.
func (r *Reporter) Fatal(message string) {
	r.FatalError(message)
	exitFn(1)
}

// ICE tags a message as an internal compiler error.
func ICE(message string) string {
	return "internal compiler error (please report this): " + message
}

func (r *Reporter) header(col, tag, message string) {
	fmt.Fprintf(r.out, "%s%s%s %s\n", r.c(col), tag, r.c(ColorReset), message)
}

func (r *Reporter) renderNotes(notes []Note) {
	for _, n := range notes {
		r.renderNote(n)
	}
	fmt.Fprintln(r.out)
}
