// Package diag implements the diagnostic sink used by the reader and lexer
// to report warnings and errors without ever aborting the scan in
// progress.
package diag

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/veficos/occ/token"
)

// Sink receives warnings and errors discovered while reading or lexing. A
// Sink must never abort the caller; it only records/renders.
type Sink interface {
	ErrorAtToken(tok *token.Token, format string, args ...interface{})
	WarningAtToken(tok *token.Token, format string, args ...interface{})
	ErrorAtPosition(name string, line, column, caretColumn, caretLen int, lineBytes []byte, format string, args ...interface{})
	WarningAtPosition(name string, line, column, caretColumn, caretLen int, lineBytes []byte, format string, args ...interface{})

	// ErrorCount and WarningCount let callers determine translation-unit
	// failure without inspecting the token stream's shape.
	ErrorCount() int
	WarningCount() int
}

// NopSink discards all diagnostics except for counting totals. It is the
// default used by tests and by library consumers that bring their own
// reporting.
type NopSink struct {
	errors, warnings int
}

var _ Sink = (*NopSink)(nil)

func (s *NopSink) ErrorAtToken(tok *token.Token, format string, args ...interface{}) {
	s.errors++
}

func (s *NopSink) WarningAtToken(tok *token.Token, format string, args ...interface{}) {
	s.warnings++
}

func (s *NopSink) ErrorAtPosition(name string, line, column, caretColumn, caretLen int, lineBytes []byte, format string, args ...interface{}) {
	s.errors++
}

func (s *NopSink) WarningAtPosition(name string, line, column, caretColumn, caretLen int, lineBytes []byte, format string, args ...interface{}) {
	s.warnings++
}

func (s *NopSink) ErrorCount() int   { return s.errors }
func (s *NopSink) WarningCount() int { return s.warnings }

// TermSink renders diagnostics to an io.Writer as structured, leveled log
// lines (via zerolog), including the offending physical line and a caret
// when available.
type TermSink struct {
	log              zerolog.Logger
	errors, warnings int
}

var _ Sink = (*TermSink)(nil)

// NewTermSink returns a TermSink writing human-readable, leveled records to
// w.
func NewTermSink(w io.Writer) *TermSink {
	return &TermSink{log: zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "-"}).With().Timestamp().Logger()}
}

func (s *TermSink) ErrorAtToken(tok *token.Token, format string, args ...interface{}) {
	s.errors++
	s.emit(true, tok.Loc.Name, tok.Loc.Line, tok.Loc.Column, tok.Loc.Column, literalCaretLen(tok), nil, fmt.Sprintf(format, args...))
}

func (s *TermSink) WarningAtToken(tok *token.Token, format string, args ...interface{}) {
	s.warnings++
	s.emit(false, tok.Loc.Name, tok.Loc.Line, tok.Loc.Column, tok.Loc.Column, literalCaretLen(tok), nil, fmt.Sprintf(format, args...))
}

func (s *TermSink) ErrorAtPosition(name string, line, column, caretColumn, caretLen int, lineBytes []byte, format string, args ...interface{}) {
	s.errors++
	s.emit(true, name, line, column, caretColumn, caretLen, lineBytes, fmt.Sprintf(format, args...))
}

func (s *TermSink) WarningAtPosition(name string, line, column, caretColumn, caretLen int, lineBytes []byte, format string, args ...interface{}) {
	s.warnings++
	s.emit(false, name, line, column, caretColumn, caretLen, lineBytes, fmt.Sprintf(format, args...))
}

func (s *TermSink) ErrorCount() int   { return s.errors }
func (s *TermSink) WarningCount() int { return s.warnings }

func literalCaretLen(tok *token.Token) int {
	if tok.Literal == nil || tok.Literal.Len() == 0 {
		return 1
	}
	return tok.Literal.Len()
}

func (s *TermSink) emit(isError bool, name string, line, column, caretColumn, caretLen int, lineBytes []byte, message string) {
	ev := s.log.Warn()
	if isError {
		ev = s.log.Error()
	}
	ev = ev.Str("file", name).Int("line", line).Int("column", column)
	if lineBytes != nil {
		ev = ev.Str("source", string(lineBytes)).Str("caret", caretLine(lineBytes, caretColumn, caretLen))
	}
	ev.Msg(message)
}

// caretLine renders a caret-underline string suitable for display
// underneath lineBytes, accounting for wide runes via golang.org/x/text's
// east-asian-width tables so carets line up under multi-cell glyphs.
func caretLine(lineBytes []byte, caretColumn, caretLen int) string {
	cells := caretWidthBefore(lineBytes, caretColumn)
	out := make([]byte, 0, cells+caretLen)
	for i := 0; i < cells; i++ {
		out = append(out, ' ')
	}
	for i := 0; i < caretLen; i++ {
		out = append(out, '^')
	}
	return string(out)
}
