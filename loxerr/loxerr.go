// Package loxerr defines the diagnostics sink shared by every stage of the interpreter pipeline:
// the scanner, parser, resolver and evaluator all report through the same *Sink so that a single
// pair of sticky flags governs whether the CLI exits non-zero.
package loxerr

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/golox-lang/golox/token"
)

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed)
)

// Sink collects diagnostics produced while scanning, parsing, resolving and running a program.
// It carries two sticky flags rather than an error list: once set, a flag stays set until Reset
// is called, mirroring the book's global error state.
type Sink struct {
	w               io.Writer
	hadParseError   bool
	hadRuntimeError bool
}

// New returns a Sink which writes formatted diagnostics to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// HadParseError reports whether a scan, parse, or static resolver error has been reported.
func (s *Sink) HadParseError() bool {
	return s.hadParseError
}

// HadRuntimeError reports whether a runtime error has been reported.
func (s *Sink) HadRuntimeError() bool {
	return s.hadRuntimeError
}

// Reset clears both sticky flags, used between REPL lines so that one bad line doesn't prevent
// the next one from running.
func (s *Sink) Reset() {
	s.hadParseError = false
	s.hadRuntimeError = false
}

// Error reports a scan or parse error at the given source line.
func (s *Sink) Error(line int, msg string) {
	s.report(line, "", msg)
}

// TokenError reports a parse or static resolver error located at tok.
func (s *Sink) TokenError(tok token.Token, msg string) {
	if tok.Type == token.EOF {
		s.report(tok.Line, " at end", msg)
	} else {
		s.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), msg)
	}
}

func (s *Sink) report(line int, place, msg string) {
	bold.Fprintf(s.w, "[line %d] %s%s: %s\n", line, red.Sprint("Error"), place, msg)
	s.hadParseError = true
}

// RuntimeError reports a runtime error produced while executing a program.
func (s *Sink) RuntimeError(err *RuntimeError) {
	fmt.Fprintf(s.w, "line %d, %s : %s\n", err.Token.Line, err.Token.Lexeme, err.Msg)
	s.hadRuntimeError = true
}

// RuntimeError is the error value carried by a panic that unwinds the evaluator on a runtime
// failure. It carries the offending token so that the Sink can report the line it occurred on.
type RuntimeError struct {
	Token token.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d, %s : %s", e.Token.Line, e.Token.Lexeme, e.Msg)
}

// NewRuntimeError constructs a *RuntimeError located at tok.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}
