package cells

import (
	"fmt"
	"strings"
)

// ShiftReferences rewrites the cell references in formula by deltaRow
// rows and deltaCol columns, as when a formula is copied to another
// cell. Axes pinned with "$" stay put, and text without a leading "="
// comes back unchanged. Only references that actually move are
// rewritten, so spelling, case and spacing elsewhere survive and a
// zero shift returns its input byte for byte. A reference that would
// move above row 1 or left of column A is an error.
func ShiftReferences(formula string, deltaRow, deltaCol int) (string, error) {
	if !strings.HasPrefix(formula, "=") {
		return formula, nil
	}

	body := formula[1:]
	toks := scanTokens(body)

	var sb strings.Builder
	sb.WriteByte('=')

	last := 0
	for i, tok := range toks {
		if tok.Type != tokenIdent {
			continue
		}
		// An identifier at the mouth of a call is a function name,
		// even when it also spells an address (LOG10, say).
		if toks[i+1].Type == tokenLParen {
			continue
		}
		addr, err := ParseAddress(tok.Literal)
		if err != nil {
			continue
		}
		moved, ok := addr.shifted(deltaRow, deltaCol)
		if !ok {
			return "", fmt.Errorf("cells: shifting %s by (%d, %d) moves it out of bounds", tok.Literal, deltaRow, deltaCol)
		}
		if moved == addr {
			continue
		}
		sb.WriteString(body[last:tok.Pos])
		sb.WriteString(moved.String())
		last = tok.End
	}
	sb.WriteString(body[last:])

	return sb.String(), nil
}

// scanTokens lexes the whole body, EOF token included. Malformed
// input is not an error here: illegal tokens simply pass through the
// rewrite untouched.
func scanTokens(body string) []Token {
	var toks []Token
	l := newLexer(body)
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == tokenEOF {
			return toks
		}
	}
}
