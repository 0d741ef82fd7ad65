package lexer_test

import (
	"testing"

	"github.com/veficos/occ/diag"
	"github.com/veficos/occ/lexer"
	"github.com/veficos/occ/reader"
	"github.com/veficos/occ/token"
)

// FuzzLexer checks that Scan always terminates at an END token and never
// panics, for arbitrary byte input.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		"",
		"int main(void) { return 0; }\n",
		"'\\x41'",
		`u8"é"`,
		"#inc\\\nlude <stdio.h>\n",
		"/* unterminated",
		"'",
		"\"",
		"\\u",
		"...",
		"\x00\x01\xff",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		sink := &diag.NopSink{}
		lx := lexer.New(sink)
		if !lx.Push(reader.StreamString, src) {
			return
		}

		const maxTokens = 1 << 16
		for i := 0; i < maxTokens; i++ {
			tok := lx.Scan()
			if tok.Kind == token.End {
				return
			}
		}
		t.Fatalf("lexer did not reach END within %d tokens for %q", maxTokens, src)
	})
}
