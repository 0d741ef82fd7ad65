// Package cbuf implements a growable byte buffer used to accumulate token
// literals and other scratch text during lexing.
//
// It mirrors the cstring_t buffers of the C implementation this package was
// ported from: length and capacity headroom are tracked explicitly, a
// logically-excluded trailing zero byte is always present so the buffer can
// be handed to APIs that want a C string, and growth follows a doubling
// policy so that repeated single-byte appends stay amortized O(1).
package cbuf

import (
	"fmt"
	"unicode/utf8"
)

// Buffer is a growable byte buffer with explicit length/capacity tracking.
//
// The zero value is not usable; construct one with New or NewFromBytes.
type Buffer struct {
	buf []byte // buf[:n+1] is valid; buf[n] is always 0
	n   int
}

// PopSentinel is returned by PopByte when the buffer is empty.
const PopSentinel = -1

// New returns an empty Buffer with the given initial payload capacity.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, 1, capacity+1)}
}

// NewFromBytes returns a Buffer whose logical content is a copy of b.
func NewFromBytes(b []byte) *Buffer {
	buf := New(len(b))
	buf.AppendBytes(b)
	return buf
}

// Len returns the number of logical bytes currently in the buffer.
func (b *Buffer) Len() int { return b.n }

// Cap returns the number of bytes that can be appended before a
// reallocation is required.
func (b *Buffer) Cap() int { return cap(b.buf) - b.n - 1 }

// Bytes returns the logical content of the buffer. The returned slice
// aliases the buffer's storage and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.buf[:b.n] }

// String returns a copy of the logical content as a string.
func (b *Buffer) String() string { return string(b.buf[:b.n]) }

// CString returns the logical content together with its trailing zero
// byte, for callers that need a NUL-terminated view.
func (b *Buffer) CString() []byte { return b.buf[:b.n+1] }

func (b *Buffer) grow(extra int) {
	need := b.n + extra + 1
	if need <= cap(b.buf) {
		b.buf = b.buf[:need]
		return
	}
	newCap := 2 * b.n
	if need > newCap {
		newCap = need
	}
	nb := make([]byte, need, newCap)
	copy(nb, b.buf[:b.n])
	b.buf = nb
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.grow(1)
	b.buf[b.n] = c
	b.n++
	b.buf[b.n] = 0
}

// AppendBytes appends p in full.
func (b *Buffer) AppendBytes(p []byte) {
	if len(p) == 0 {
		return
	}
	b.grow(len(p))
	copy(b.buf[b.n:], p)
	b.n += len(p)
	b.buf[b.n] = 0
}

// AppendString appends s in full.
func (b *Buffer) AppendString(s string) {
	b.AppendBytes([]byte(s))
}

// AppendRune encodes r as UTF-8 and appends it.
func (b *Buffer) AppendRune(r rune) {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	b.AppendBytes(tmp[:n])
}

// AppendFormat formats according to format and appends the result.
func (b *Buffer) AppendFormat(format string, args ...interface{}) {
	b.AppendString(fmt.Sprintf(format, args...))
}

// PopByte removes and returns the last byte, or PopSentinel if the buffer
// is empty.
func (b *Buffer) PopByte() int {
	if b.n == 0 {
		return PopSentinel
	}
	b.n--
	c := b.buf[b.n]
	b.buf[b.n] = 0
	return int(c)
}

// Clear resets the length to zero but keeps the allocated capacity.
func (b *Buffer) Clear() {
	b.n = 0
	b.buf[0] = 0
}

// Duplicate returns an independently-owned copy of b.
func (b *Buffer) Duplicate() *Buffer {
	return NewFromBytes(b.Bytes())
}

// Equal reports whether b and other hold identical logical content.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return b.n == 0
	}
	return string(b.Bytes()) == string(other.Bytes())
}

// FoldCase lower-cases the buffer's ASCII content in place.
func (b *Buffer) FoldCase() {
	for i := 0; i < b.n; i++ {
		c := b.buf[i]
		if c >= 'A' && c <= 'Z' {
			b.buf[i] = c - 'A' + 'a'
		}
	}
}

// Trim removes leading and trailing bytes contained in cutset.
func (b *Buffer) Trim(cutset string) {
	s := b.n
	i, j := 0, s
	for i < j && containsByte(cutset, b.buf[i]) {
		i++
	}
	for j > i && containsByte(cutset, b.buf[j-1]) {
		j--
	}
	if i == 0 && j == s {
		return
	}
	copy(b.buf, b.buf[i:j])
	b.n = j - i
	b.buf[b.n] = 0
}

// MutableBytes exposes the raw backing array (including trailing zero byte)
// for callers that need to write through it directly, e.g. in-place escape
// decoding. Callers must call UpdateLength afterwards.
func (b *Buffer) MutableBytes() []byte {
	return b.buf
}

// UpdateLength recomputes the logical length by scanning for the embedded
// zero terminator. Used after a raw write through MutableBytes.
func (b *Buffer) UpdateLength() {
	for i := 0; i < len(b.buf); i++ {
		if b.buf[i] == 0 {
			b.n = i
			return
		}
	}
	b.n = len(b.buf)
}

func containsByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}
