// Package reader implements the logical source reader: phase-1 line-ending
// canonicalization and phase-2 backslash-newline splicing over a LIFO stack
// of input streams (file- or string-backed), with unbounded putback and
// positional tracking for diagnostics.
package reader

import (
	"os"

	"github.com/pkg/errors"

	"github.com/veficos/occ/internal/intern"
)

// EOF is returned by Get/Peek when the active stream (or the whole reader)
// is exhausted.
const EOF = -1

// StreamKind selects how Push interprets its spec argument.
type StreamKind int

const (
	// StreamFile loads the file at the given path eagerly.
	StreamFile StreamKind = iota
	// StreamString reads from the given in-memory bytes. Its source name
	// is always "<string>".
	StreamString
)

// stringSourceName is the fixed logical name used for string-backed streams.
const stringSourceName = "<string>"

type stream struct {
	kind StreamKind

	name intern.Handle
	src  []byte // entire source, phase-1/2 untouched
	pc   int    // read cursor into src
	pe   int    // one-past-end

	line      int
	column    int
	lineStart int // byte index into src of the current physical line's first byte

	stash []byte // putback stack (LIFO)

	lastch int // last character delivered by Get, or EOF/0 before any Get

	modTime, accessTime, changeTime int64 // unix seconds; zero for string streams
}

// Reader is a stack of input streams exposing a single logical character
// cursor.
type Reader struct {
	pool    intern.Pool
	streams []*stream

	options Options

	lastPushErr error
}

// Options controls warnings emitted while splicing backslash-newlines.
type Options struct {
	// WarnBackslashNewlineSpace warns when whitespace separates a
	// backslash from the newline it splices.
	WarnBackslashNewlineSpace bool
	// WarnNoNewlineEOF warns when a backslash-newline splice is the last
	// thing in the file, i.e. the file has no final newline.
	WarnNoNewlineEOF bool
	// OnWarning, if non-nil, is invoked for every warning produced by the
	// splicing logic. name/line/column/lineStart describe the position of
	// the backslash that triggered the warning; lineBytes is that physical
	// line's bytes (up to the next CR/LF), for diagnostic rendering.
	OnWarning func(name string, line, column, lineStart int, lineBytes []byte, message string)
}

// New returns an empty Reader configured with opts.
func New(opts Options) *Reader {
	return &Reader{options: opts}
}

// LastPushError returns the error recorded by the most recent failed Push,
// or nil if the last Push succeeded (or none was made).
func (r *Reader) LastPushError() error { return r.lastPushErr }

// Push loads a new input source and makes it the active stream.
//
// For StreamFile, spec is a path; the file is read eagerly and a false
// return (with LastPushError set) indicates an I/O failure and leaves the
// reader's stream stack unchanged. For StreamString, spec is read as the
// literal source bytes and the push always succeeds.
func (r *Reader) Push(kind StreamKind, spec string) bool {
	var (
		name string
		src  []byte
		mt, at, ct int64
	)

	switch kind {
	case StreamFile:
		data, err := os.ReadFile(spec)
		if err != nil {
			r.lastPushErr = errors.Wrapf(err, "reader: push %q", spec)
			return false
		}
		fi, err := os.Stat(spec)
		if err != nil {
			r.lastPushErr = errors.Wrapf(err, "reader: stat %q", spec)
			return false
		}
		name = spec
		src = data
		mt = fi.ModTime().Unix()
		at = mt
		ct = mt
	case StreamString:
		name = stringSourceName
		src = []byte(spec)
	default:
		r.lastPushErr = errors.Errorf("reader: unknown stream kind %d", kind)
		return false
	}

	st := &stream{
		kind:        kind,
		name:        r.pool.Intern(name),
		src:         src,
		pc:          0,
		pe:          len(src),
		line:        1,
		column:      1,
		lineStart:   0,
		lastch:      0,
		modTime:     mt,
		accessTime:  at,
		changeTime:  ct,
	}
	r.streams = append(r.streams, st)
	r.lastPushErr = nil
	return true
}

// Pop discards the active stream. It is a programmer error to call Pop on
// an empty reader.
func (r *Reader) Pop() {
	if len(r.streams) == 0 {
		panic("reader: Pop on empty reader")
	}
	r.streams = r.streams[:len(r.streams)-1]
}

// IsEmpty reports whether no streams remain on the stack.
func (r *Reader) IsEmpty() bool { return len(r.streams) == 0 }

func (r *Reader) active() *stream {
	if len(r.streams) == 0 {
		return nil
	}
	return r.streams[len(r.streams)-1]
}

// Get consumes and returns one logical character, or EOF if the active
// stream (or the whole reader) is exhausted.
func (r *Reader) Get() int {
	st := r.active()
	if st == nil {
		return EOF
	}
	if n := len(st.stash); n > 0 {
		ch := st.stash[n-1]
		st.stash = st.stash[:n-1]
		st.lastch = int(ch)
		return int(ch)
	}
	return r.streamNext(st)
}

// Peek returns the next logical character without consuming it. Peek is
// idempotent: repeated calls with no intervening Get/Unget return the same
// value.
func (r *Reader) Peek() int {
	st := r.active()
	if st == nil {
		return EOF
	}
	if n := len(st.stash); n > 0 {
		return int(st.stash[n-1])
	}
	return r.streamPeek(st)
}

// Unget pushes ch back onto the active stream so that a subsequent
// Get/Peek observes it. Depth is unbounded. Passing EOF is a programmer
// error and panics.
func (r *Reader) Unget(ch int) {
	if ch == EOF {
		panic("reader: Unget(EOF)")
	}
	st := r.active()
	if st == nil {
		panic("reader: Unget on empty reader")
	}
	st.stash = append(st.stash, byte(ch))
}

// Try consumes and returns true if Peek() == ch, otherwise leaves the
// cursor untouched and returns false.
func (r *Reader) Try(ch int) bool {
	if r.Peek() == ch {
		r.Get()
		return true
	}
	return false
}

// Test reports whether Peek() == ch.
func (r *Reader) Test(ch int) bool { return r.Peek() == ch }

// Line returns the active stream's current 1-based line number.
func (r *Reader) Line() int {
	if st := r.active(); st != nil {
		return st.line
	}
	return 0
}

// Column returns the active stream's current 1-based column number.
func (r *Reader) Column() int {
	if st := r.active(); st != nil {
		return st.column
	}
	return 0
}

// LineStart returns the byte index, within the active stream's source
// bytes, of the first byte of the current physical line.
func (r *Reader) LineStart() int {
	if st := r.active(); st != nil {
		return st.lineStart
	}
	return 0
}

// Name returns the active stream's logical source name.
func (r *Reader) Name() string {
	if st := r.active(); st != nil {
		return r.pool.String(st.name)
	}
	return ""
}

// LineBytes returns the bytes of the physical line starting at the active
// stream's current LineStart, stopping before the next CR or LF.
func (r *Reader) LineBytes() []byte {
	st := r.active()
	if st == nil {
		return nil
	}
	return lineBytesOf(st, st.lineStart)
}

// ModTime, AccessTime and ChangeTime return the active stream's file
// timestamps (unix seconds), or zero for string-backed streams. Push reads
// only the file's modification time, so AccessTime and ChangeTime return
// the same value as ModTime.
func (r *Reader) ModTime() int64 {
	if st := r.active(); st != nil {
		return st.modTime
	}
	return 0
}

func (r *Reader) AccessTime() int64 {
	if st := r.active(); st != nil {
		return st.accessTime
	}
	return 0
}

func (r *Reader) ChangeTime() int64 {
	if st := r.active(); st != nil {
		return st.changeTime
	}
	return 0
}

func (r *Reader) warn(st *stream, message string) {
	if r.options.OnWarning != nil {
		r.options.OnWarning(r.pool.String(st.name), st.line, st.column, st.lineStart, lineBytesOf(st, st.lineStart), message)
	}
}

func lineBytesOf(st *stream, lineStart int) []byte {
	i := lineStart
	j := i
	for j < len(st.src) && st.src[j] != '\r' && st.src[j] != '\n' {
		j++
	}
	return st.src[i:j]
}

func isHSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

func isSpace(b byte) bool {
	return isHSpace(b) || b == '\r' || b == '\n'
}

func (r *Reader) stepLine(st *stream) {
	st.line++
	st.column = 1
	st.lineStart = st.pc
}

// streamNext implements the phase-1/phase-2 character delivery rules.
func (r *Reader) streamNext(st *stream) int {
again:
	if st.pc >= st.pe {
		if st.lastch == '\n' || st.lastch == EOF {
			st.lastch = EOF
			return EOF
		}
		st.lastch = '\n'
		return '\n'
	}

	ch := int(st.src[st.pc])
	st.pc++

	switch {
	case ch == '\r':
		if st.pc < st.pe && st.src[st.pc] == '\n' {
			st.pc++
		}
		r.stepLine(st)
		st.lastch = '\n'
		return '\n'

	case ch == '\n':
		r.stepLine(st)
		st.lastch = '\n'
		return '\n'

	case ch == '\\':
		pc := st.pc
		step := 0
		for pc < st.pe && isSpace(st.src[pc]) {
			if st.src[pc] == '\r' {
				if pc+1 < st.pe && st.src[pc+1] == '\n' {
					pc++
					step++
				}
				if pc > st.pc+step && r.options.WarnBackslashNewlineSpace {
					r.warn(st, "backslash and newline separated by space")
				}
				st.pc = pc + 1
				r.stepLine(st)
				goto again
			}
			if st.src[pc] == '\n' {
				if pc > st.pc+step && r.options.WarnBackslashNewlineSpace {
					r.warn(st, "backslash and newline separated by space")
				}
				st.pc = pc + 1
				r.stepLine(st)
				goto again
			}
			pc++
		}
		if pc == st.pe {
			if r.options.WarnNoNewlineEOF {
				r.warn(st, "backslash-newline at end of file")
			}
			st.pc = pc
			st.lastch = '\n'
			return '\n'
		}
		// lone backslash not followed by a splice-eligible newline: delivered
		// as-is, matching the original implementation's column bookkeeping.
		st.lastch = ch
		return ch

	default:
		st.column++
		st.lastch = ch
		return ch
	}
}

// streamPeek computes the same logical character as streamNext without
// mutating the stream's cursor or positional state. It loops rather than
// recursing so that a run of consecutive backslash-newline splices cannot
// grow the call stack.
func (r *Reader) streamPeek(st *stream) int {
	pc := st.pc
	for {
		if pc >= st.pe {
			if st.lastch == '\n' || st.lastch == EOF {
				return EOF
			}
			return '\n'
		}

		ch := int(st.src[pc])
		pc++

		switch ch {
		case '\r', '\n':
			return '\n'
		case '\\':
			spliced := false
			for pc < st.pe && isSpace(st.src[pc]) {
				if st.src[pc] == '\r' {
					if pc+1 < st.pe && st.src[pc+1] == '\n' {
						pc++
					}
					pc++
					spliced = true
					break
				}
				if st.src[pc] == '\n' {
					pc++
					spliced = true
					break
				}
				pc++
			}
			if spliced {
				continue
			}
			if pc == st.pe {
				return '\n'
			}
			return ch
		default:
			return ch
		}
	}
}
