package cbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veficos/occ/internal/cbuf"
)

func TestAppendAndString(t *testing.T) {
	b := cbuf.New(0)
	b.AppendString("hello")
	b.AppendByte(' ')
	b.AppendString("world")
	assert.Equal(t, "hello world", b.String())
	assert.Equal(t, 11, b.Len())
}

func TestGrowthDoubling(t *testing.T) {
	b := cbuf.New(1)
	for i := 0; i < 100; i++ {
		b.AppendByte('x')
	}
	assert.Equal(t, 100, b.Len())
	assert.Equal(t, 100, len(b.Bytes()))
}

func TestCStringNulTerminated(t *testing.T) {
	b := cbuf.New(4)
	b.AppendString("abc")
	cs := b.CString()
	require.Len(t, cs, 4)
	assert.Equal(t, byte(0), cs[3])
}

func TestPopByte(t *testing.T) {
	b := cbuf.New(0)
	assert.Equal(t, cbuf.PopSentinel, b.PopByte())
	b.AppendString("ab")
	assert.Equal(t, int('b'), b.PopByte())
	assert.Equal(t, "a", b.String())
}

func TestDuplicateIsIndependent(t *testing.T) {
	b := cbuf.New(0)
	b.AppendString("shared")
	dup := b.Duplicate()
	b.AppendString("-mutated")
	assert.Equal(t, "shared", dup.String())
	assert.Equal(t, "shared-mutated", b.String())
}

func TestEqual(t *testing.T) {
	a := cbuf.NewFromBytes([]byte("same"))
	b := cbuf.NewFromBytes([]byte("same"))
	c := cbuf.NewFromBytes([]byte("different"))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestFoldCase(t *testing.T) {
	b := cbuf.NewFromBytes([]byte("MiXeD_Case"))
	b.FoldCase()
	assert.Equal(t, "mixed_case", b.String())
}

func TestTrim(t *testing.T) {
	b := cbuf.NewFromBytes([]byte("  padded  "))
	b.Trim(" ")
	assert.Equal(t, "padded", b.String())
}

func TestClear(t *testing.T) {
	b := cbuf.NewFromBytes([]byte("content"))
	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.String())
}

func TestAppendRune(t *testing.T) {
	b := cbuf.New(0)
	b.AppendRune('牛')
	assert.Equal(t, "牛", b.String())
}
