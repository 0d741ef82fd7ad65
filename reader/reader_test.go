package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veficos/occ/reader"
)

func drain(t *testing.T, rd *reader.Reader) string {
	t.Helper()
	var out []byte
	for {
		ch := rd.Get()
		if ch == reader.EOF {
			break
		}
		out = append(out, byte(ch))
	}
	return string(out)
}

func TestCRLFAndCRCanonicalizeToLF(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "a\r\nb\rc\n"))
	assert.Equal(t, "a\nb\nc\n", drain(t, rd))
}

func TestBackslashNewlineSplice(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "ab\\\ncd\n"))
	assert.Equal(t, "abcd\n", drain(t, rd))
}

func TestBackslashNewlineSpliceAcrossCRLF(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "ab\\\r\ncd\n"))
	assert.Equal(t, "abcd\n", drain(t, rd))
}

func TestLoneBackslashNotFollowedByNewlinePassesThrough(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "a\\b\n"))
	assert.Equal(t, "a\\b\n", drain(t, rd))
}

func TestMissingFinalNewlineIsSynthesized(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "abc"))
	assert.Equal(t, "abc\n", drain(t, rd))
}

func TestBackslashNewlineSpliceAtEOFSynthesizesNewline(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "abc\\\n"))
	assert.Equal(t, "abc\n", drain(t, rd))
}

func TestPeekIsIdempotent(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "xy\n"))
	assert.Equal(t, int('x'), rd.Peek())
	assert.Equal(t, int('x'), rd.Peek())
	assert.Equal(t, int('x'), rd.Get())
	assert.Equal(t, int('y'), rd.Peek())
}

func TestPeekAgreesWithGetAcrossSplices(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "a\\\n\\\nb\n"))
	for {
		peeked := rd.Peek()
		got := rd.Get()
		assert.Equal(t, peeked, got)
		if got == reader.EOF {
			break
		}
	}
}

func TestUngetUnboundedDepth(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "z\n"))
	ch := rd.Get()
	for i := 0; i < 10; i++ {
		rd.Unget(ch)
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, ch, rd.Get())
	}
}

func TestUngetEOFPanics(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, ""))
	assert.Panics(t, func() { rd.Unget(reader.EOF) })
}

func TestLineAndColumnAdvanceMonotonically(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "ab\ncd\n"))
	assert.Equal(t, 1, rd.Line())
	rd.Get()
	rd.Get()
	assert.Equal(t, 1, rd.Line())
	rd.Get() // consumes '\n'
	assert.Equal(t, 2, rd.Line())
	assert.Equal(t, 1, rd.Column())
}

func TestWarnBackslashNewlineSpace(t *testing.T) {
	var messages []string
	rd := reader.New(reader.Options{
		WarnBackslashNewlineSpace: true,
		OnWarning: func(name string, line, column, lineStart int, lineBytes []byte, message string) {
			messages = append(messages, message)
		},
	})
	require.True(t, rd.Push(reader.StreamString, "a\\  \nb\n"))
	assert.Equal(t, "ab\n", drain(t, rd))
	require.Len(t, messages, 1)
}

func TestPushMissingFileFails(t *testing.T) {
	rd := reader.New(reader.Options{})
	ok := rd.Push(reader.StreamFile, "/nonexistent/path/does/not/exist.c")
	assert.False(t, ok)
	assert.Error(t, rd.LastPushError())
}

func TestStreamStackPopRestoresOuterStream(t *testing.T) {
	rd := reader.New(reader.Options{})
	require.True(t, rd.Push(reader.StreamString, "outer\n"))
	require.True(t, rd.Push(reader.StreamString, "inner\n"))
	assert.Equal(t, int('i'), rd.Get())
	rd.Pop()
	assert.Equal(t, int('o'), rd.Get())
}
