package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veficos/occ/diag"
	"github.com/veficos/occ/token"
)

func TestNopSinkCounts(t *testing.T) {
	s := &diag.NopSink{}
	tok := token.New()
	s.ErrorAtToken(tok, "boom")
	s.WarningAtToken(tok, "careful")
	s.WarningAtToken(tok, "careful again")

	assert.Equal(t, 1, s.ErrorCount())
	assert.Equal(t, 2, s.WarningCount())
}

func TestTermSinkWritesMessageAndCounts(t *testing.T) {
	var buf bytes.Buffer
	s := diag.NewTermSink(&buf)

	tok := token.New()
	tok.Loc.Mark("main.c", 10, 3, 0)
	s.ErrorAtToken(tok, "unexpected %s", "token")

	assert.Equal(t, 1, s.ErrorCount())
	assert.Contains(t, buf.String(), "main.c")
	assert.Contains(t, buf.String(), "unexpected token")
}

func TestTermSinkRendersCaretLine(t *testing.T) {
	var buf bytes.Buffer
	s := diag.NewTermSink(&buf)

	s.ErrorAtPosition("main.c", 1, 5, 5, 1, []byte("int  x;"), "stray character")
	assert.Contains(t, buf.String(), "stray character")
	assert.Contains(t, buf.String(), "    ^")
}
