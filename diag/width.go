package diag

import "golang.org/x/text/width"

// caretWidthBefore computes how many terminal cells the bytes of lineBytes
// preceding the 1-based byte column caretColumn occupy, so that a caret
// printed underneath lines containing wide (e.g. East-Asian) runes still
// lines up with the offending byte.
func caretWidthBefore(lineBytes []byte, caretColumn int) int {
	upto := caretColumn - 1
	if upto > len(lineBytes) {
		upto = len(lineBytes)
	}
	if upto < 0 {
		upto = 0
	}
	cells := 0
	for _, r := range string(lineBytes[:upto]) {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cells += 2
		default:
			cells++
		}
	}
	return cells
}
