// Package lexer implements phase 3 (token formation) over a logical
// source reader, producing the token stream consumed by everything
// downstream of translation.
package lexer

import (
	"fmt"
	"time"

	"github.com/veficos/occ/diag"
	"github.com/veficos/occ/reader"
	"github.com/veficos/occ/token"
)

// encoding identifies the prefix (if any) that introduced a character or
// string literal.
type encoding int

const (
	encNone encoding = iota
	encWChar
	encChar16
	encChar32
	encUTF8
)

// Lexer turns the logical character stream produced by a reader.Reader
// into a stream of tokens. A Lexer owns its Reader; callers drive input
// selection through Push/Pop rather than constructing a Reader directly.
type Lexer struct {
	rd   *reader.Reader
	sink diag.Sink
	opts Options

	tok *token.Token // scratch in-progress token, reused across Scan calls

	pending []*token.Token // FIFO of tokens returned by Untread, consumed before Scan runs again
	stashes [][]*token.Token

	atLineStart bool // true if no substantive token has been produced since the start of input or the last newline

	buildDate string
	buildTime string
}

// New returns a Lexer that reports diagnostics to sink and reads from a
// freshly constructed Reader configured from opts.
func New(sink diag.Sink, opts ...Option) *Lexer {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	l := &Lexer{
		sink:        sink,
		opts:        o,
		tok:         token.New(),
		atLineStart: true,
	}

	l.rd = reader.New(reader.Options{
		WarnBackslashNewlineSpace: o.WarnBackslashNewlineSpace,
		WarnNoNewlineEOF:          o.WarnNoNewlineEOF,
		OnWarning: func(name string, line, column, lineStart int, lineBytes []byte, message string) {
			l.sink.WarningAtPosition(name, line, column, column, 1, lineBytes, "%s", message)
		},
	})

	now := time.Now()
	l.buildDate = now.Format("Jan _2 2006")
	l.buildTime = now.Format("15:04:05")

	return l
}

// Push loads a new input source onto the reader and makes it active. See
// reader.Reader.Push for the kind/spec contract.
func (l *Lexer) Push(kind reader.StreamKind, spec string) bool { return l.rd.Push(kind, spec) }

// Pop discards the active input source.
func (l *Lexer) Pop() { l.rd.Pop() }

// IsEmpty reports whether no input source remains.
func (l *Lexer) IsEmpty() bool { return l.rd.IsEmpty() }

// Date returns the lexer's fixed "Mmm dd yyyy"-formatted build date, the
// value substituted for the predefined __DATE__ macro.
func (l *Lexer) Date() string { return l.buildDate }

// Time returns the lexer's fixed "hh:mm:ss"-formatted build time, the
// value substituted for the predefined __TIME__ macro.
func (l *Lexer) Time() string { return l.buildTime }

// Next returns the next substantive token, consuming from the Untread
// backlog first. Once that backlog is empty it repeatedly calls Scan,
// collapsing whitespace, comment and newline trivia into the LeadingSpace
// count and BeginningLine flag of the following substantive token.
func (l *Lexer) Next() *token.Token {
	if n := len(l.pending); n > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	spaces := 0
	for {
		tok := l.Scan()
		switch tok.Kind {
		case token.Space, token.Comment:
			spaces++
			continue
		case token.NewLine:
			spaces++
			l.atLineStart = true
			continue
		default:
			tok.LeadingSpace = spaces
			tok.BeginningLine = l.atLineStart
			l.atLineStart = false
			return tok
		}
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() *token.Token {
	tok := l.Next()
	l.Untread(tok)
	return tok
}

// Untread pushes tok back so that the next Next call returns it again,
// preserving FIFO order across multiple Untread calls.
func (l *Lexer) Untread(tok *token.Token) {
	l.pending = append([]*token.Token{tok}, l.pending...)
}

// Stash saves the current Untread backlog on an internal stack and
// starts a fresh, empty one, so a caller can do speculative lookahead
// (Next, optionally Untread some of it back) and then either keep going
// or rewind with Unstash.
func (l *Lexer) Stash() {
	l.stashes = append(l.stashes, l.pending)
	l.pending = nil
}

// Unstash drains whatever remains in the current Untread backlog (i.e.
// whatever the caller Untread before calling Unstash) back onto the
// outer backlog saved by the matching Stash, so that a subsequent Next
// replays it. It is a programmer error to call Unstash without a
// matching prior Stash.
func (l *Lexer) Unstash() {
	n := len(l.stashes)
	if n == 0 {
		panic("lexer: Unstash without matching Stash")
	}
	outer := l.stashes[n-1]
	l.stashes = l.stashes[:n-1]
	l.pending = append(l.pending, outer...)
}

func (l *Lexer) markLoc() {
	l.tok.Loc.Mark(l.rd.Name(), l.rd.Line(), l.rd.Column(), l.rd.LineStart())
}

func (l *Lexer) remarkLoc() {
	l.tok.Loc.Remark(l.rd.Line(), l.rd.Column(), l.rd.LineStart())
}

func (l *Lexer) makeToken(kind token.Kind) *token.Token {
	l.tok.Kind = kind
	out := l.tok.Duplicate()
	l.tok.Reset()
	return out
}

func (l *Lexer) errorAtToken(format string, args ...interface{}) {
	l.sink.ErrorAtToken(l.tok, format, args...)
}

func (l *Lexer) warningAtToken(format string, args ...interface{}) {
	l.sink.WarningAtToken(l.tok, format, args...)
}

// Scan reads and returns exactly one token, bypassing the Untread
// backlog. Most callers want Next.
func (l *Lexer) Scan() *token.Token {
	l.markLoc()

	if l.skipHorizontalWhitespace() {
		return l.makeToken(token.Space)
	}

	ch := l.rd.Get()

	switch ch {
	case '\n':
		return l.makeToken(token.NewLine)
	case reader.EOF:
		return l.makeToken(token.End)

	case '[':
		return l.makeToken(token.LSquare)
	case ']':
		return l.makeToken(token.RSquare)
	case '(':
		return l.makeToken(token.LParen)
	case ')':
		return l.makeToken(token.RParen)
	case '{':
		return l.makeToken(token.LBrace)
	case '}':
		return l.makeToken(token.RBrace)
	case ';':
		return l.makeToken(token.Semi)
	case ',':
		return l.makeToken(token.Comma)
	case '~':
		return l.makeToken(token.Tilde)
	case '?':
		return l.makeToken(token.Question)

	case '.':
		if isDigit(l.rd.Peek()) {
			return l.lexNumber(byte(ch))
		}
		if l.rd.Try('.') {
			if l.rd.Try('.') {
				return l.makeToken(token.Ellipsis)
			}
			l.rd.Unget('.')
			return l.makeToken(token.Period)
		}
		return l.makeToken(token.Period)

	case '&':
		if l.rd.Try('&') {
			return l.makeToken(token.AmpAmp)
		}
		if l.rd.Try('=') {
			return l.makeToken(token.AmpEqual)
		}
		return l.makeToken(token.Amp)

	case '|':
		if l.rd.Try('|') {
			return l.makeToken(token.PipePipe)
		}
		if l.rd.Try('=') {
			return l.makeToken(token.PipeEqual)
		}
		return l.makeToken(token.Pipe)

	case '+':
		if l.rd.Try('+') {
			return l.makeToken(token.PlusPlus)
		}
		if l.rd.Try('=') {
			return l.makeToken(token.PlusEqual)
		}
		return l.makeToken(token.Plus)

	case '-':
		if l.rd.Try('>') {
			return l.makeToken(token.Arrow)
		}
		if l.rd.Try('-') {
			return l.makeToken(token.MinusMinus)
		}
		if l.rd.Try('=') {
			return l.makeToken(token.MinusEqual)
		}
		return l.makeToken(token.Minus)

	case '*':
		if l.rd.Try('=') {
			return l.makeToken(token.StarEqual)
		}
		return l.makeToken(token.Star)

	case '/':
		if l.rd.Test('/') || l.rd.Test('*') {
			l.tok.Literal.AppendByte('/')
			l.skipComment()
			return l.makeToken(token.Comment)
		}
		if l.rd.Try('=') {
			return l.makeToken(token.SlashEqual)
		}
		return l.makeToken(token.Slash)

	case '%':
		if l.rd.Try('=') {
			return l.makeToken(token.PercentEqual)
		}
		if l.rd.Try('>') {
			return l.makeToken(token.RBrace)
		}
		if l.rd.Try(':') {
			if l.rd.Try('%') {
				if l.rd.Try(':') {
					return l.makeToken(token.HashHash)
				}
				l.rd.Unget('%')
			}
			return l.makeToken(token.Hash)
		}
		return l.makeToken(token.Percent)

	case '<':
		if l.rd.Try('<') {
			if l.rd.Try('=') {
				return l.makeToken(token.LessLessEqual)
			}
			return l.makeToken(token.LessLess)
		}
		if l.rd.Try('=') {
			return l.makeToken(token.LessEqual)
		}
		if l.rd.Try(':') {
			return l.makeToken(token.LSquare)
		}
		if l.rd.Try('%') {
			return l.makeToken(token.LBrace)
		}
		return l.makeToken(token.Less)

	case '>':
		if l.rd.Try('>') {
			if l.rd.Try('=') {
				return l.makeToken(token.GreaterGreaterEqual)
			}
			return l.makeToken(token.GreaterGreater)
		}
		if l.rd.Try('=') {
			return l.makeToken(token.GreaterEqual)
		}
		return l.makeToken(token.Greater)

	case '^':
		if l.rd.Try('=') {
			return l.makeToken(token.CaretEqual)
		}
		return l.makeToken(token.Caret)

	case '=':
		if l.rd.Try('=') {
			return l.makeToken(token.EqualEqual)
		}
		return l.makeToken(token.Equal)

	case '!':
		if l.rd.Try('=') {
			return l.makeToken(token.ExclaimEqual)
		}
		return l.makeToken(token.Exclaim)

	case ':':
		if l.rd.Try('>') {
			return l.makeToken(token.RSquare)
		}
		return l.makeToken(token.Colon)

	case '#':
		if l.rd.Try('#') {
			return l.makeToken(token.HashHash)
		}
		return l.makeToken(token.Hash)

	case '\'':
		return l.lexChar(encNone)
	case '"':
		return l.lexString(encNone)

	case 'u', 'U', 'L':
		return l.lexEncodingPrefixed(ch)

	case '\\':
		if l.rd.Test('u') || l.rd.Test('U') {
			l.rd.Unget('\\')
			return l.lexIdentifier()
		}
		return l.makeToken(token.Backslash)
	}

	if isDigit(ch) {
		return l.lexNumber(byte(ch))
	}
	if isIdentStart(ch) {
		l.rd.Unget(ch)
		return l.lexIdentifier()
	}

	l.errorAtToken("stray character %s in program", quoteRune(ch))
	return l.makeToken(token.Unknown)
}

func quoteRune(ch int) string {
	if ch < 0x20 || ch == 0x7f {
		return fmt.Sprintf("'\\x%02x'", ch)
	}
	return fmt.Sprintf("%q", rune(ch))
}

// skipHorizontalWhitespace consumes a run of horizontal whitespace
// (space, tab, vertical tab, form feed) without crossing a newline, and
// records the run length on the in-progress token.
func (l *Lexer) skipHorizontalWhitespace() bool {
	n := 0
	for isHSpace(l.rd.Peek()) {
		l.rd.Get()
		n++
	}
	if n > 0 {
		l.tok.LeadingSpace = n
	}
	return n > 0
}

// skipComment consumes a "//" line comment or a "/*" block comment,
// appending everything it reads (including delimiters) to the
// in-progress token's literal. The opening "/" has already been
// consumed and appended by the caller; the second delimiter character
// has not.
func (l *Lexer) skipComment() {
	if l.rd.Try('/') {
		l.tok.Literal.AppendByte('/')
		for {
			ch := l.rd.Peek()
			if ch == '\n' || ch == reader.EOF {
				return
			}
			l.rd.Get()
			l.tok.Literal.AppendByte(byte(ch))
		}
	}

	l.rd.Get() // consume '*'
	l.tok.Literal.AppendByte('*')
	for {
		ch := l.rd.Get()
		if ch == reader.EOF {
			l.errorAtToken("unterminated comment")
			return
		}
		l.tok.Literal.AppendByte(byte(ch))
		if ch == '*' && l.rd.Try('/') {
			l.tok.Literal.AppendByte('/')
			return
		}
	}
}
