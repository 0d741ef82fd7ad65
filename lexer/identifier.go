package lexer

import (
	"github.com/veficos/occ/reader"
	"github.com/veficos/occ/token"
)

// lexIdentifier scans an identifier. The caller must have ungotten the
// identifier's first character (or, for a universal-character-name
// lead, the backslash) before calling, since the scan loop always
// re-reads its first character itself.
func (l *Lexer) lexIdentifier() *token.Token {
	for {
		ch := l.rd.Get()

		if isIdentCont(ch) {
			l.tok.Literal.AppendByte(byte(ch))
			continue
		}

		if ch == '\\' && (l.rd.Test('u') || l.rd.Test('U')) {
			cp, _ := l.scanEscape()
			l.appendUTF8(cp)
			continue
		}

		if ch != reader.EOF {
			l.rd.Unget(ch)
		}
		break
	}

	return l.makeToken(token.Identifier)
}
