package lexer

import "github.com/veficos/occ/token"

// lexNumber scans a single pp-number: a maximal-munch run starting from
// first (already consumed) that continues through identifier characters,
// '.', the digit separator '\'', and a '+'/'-' immediately following an
// 'e', 'E', 'p' or 'P' (the only place a sign is allowed inside a
// pp-number, to admit hexadecimal and decimal floating-point exponents).
// Later phases classify, reject or further parse the resulting spelling;
// this layer only delimits it.
func (l *Lexer) lexNumber(first byte) *token.Token {
	l.tok.Literal.AppendByte(first)
	prev := first

	for {
		ch := l.rd.Peek()
		if !(isIdentCont(ch) || ch == '.' || ch == '\'' || isExponentSign(ch, prev)) {
			break
		}
		l.rd.Get()
		l.tok.Literal.AppendByte(byte(ch))
		prev = byte(ch)
	}

	return l.makeToken(token.Number)
}

func isExponentSign(ch int, prev byte) bool {
	if ch != '+' && ch != '-' {
		return false
	}
	switch prev {
	case 'e', 'E', 'p', 'P':
		return true
	default:
		return false
	}
}
