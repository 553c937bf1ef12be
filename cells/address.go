package cells

import (
	"fmt"
	"strconv"
	"strings"
)

// Address identifies a single cell. Col and Row are zero-based, with
// column 0 row 0 rendering as "A1". AbsCol and AbsRow record a "$"
// before the column letters or row digits; reference shifting leaves
// pinned axes untouched.
type Address struct {
	Col    int
	Row    int
	AbsCol bool
	AbsRow bool
}

// ParseAddress reads A1-style text such as "B2", "$C10" or "a$1".
// Letters match case-insensitively; the canonical form String renders
// is upper-case.
func ParseAddress(text string) (Address, error) {
	var addr Address
	i := 0

	if i < len(text) && text[i] == '$' {
		addr.AbsCol = true
		i++
	}

	col := 0
	for i < len(text) && isColumnLetter(text[i]) {
		ch := text[i]
		if ch >= 'a' {
			ch -= 'a' - 'A'
		}
		col = col*26 + int(ch-'A') + 1
		i++
	}
	if col == 0 {
		return Address{}, fmt.Errorf("cells: invalid cell address %q", text)
	}
	addr.Col = col - 1

	if i < len(text) && text[i] == '$' {
		addr.AbsRow = true
		i++
	}

	digitStart := i
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == digitStart || i != len(text) {
		return Address{}, fmt.Errorf("cells: invalid cell address %q", text)
	}

	row, err := strconv.Atoi(text[digitStart:])
	if err != nil || row < 1 {
		return Address{}, fmt.Errorf("cells: invalid cell address %q", text)
	}
	addr.Row = row - 1

	return addr, nil
}

func isColumnLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

// String renders the canonical text form: upper-case column letters,
// 1-based row digits, "$" on pinned axes.
func (a Address) String() string {
	var sb strings.Builder
	if a.AbsCol {
		sb.WriteByte('$')
	}
	sb.WriteString(ColumnName(a.Col))
	if a.AbsRow {
		sb.WriteByte('$')
	}
	sb.WriteString(strconv.Itoa(a.Row + 1))
	return sb.String()
}

// ColumnName renders a zero-based column index as bijective base-26
// letters: 0 is "A", 25 is "Z", 26 is "AA". Hosts use it for grid
// headers.
func ColumnName(col int) string {
	// 14 letters cover the widest int64 column.
	var buf [16]byte
	i := len(buf)
	for col >= 0 {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
	}
	return string(buf[i:])
}

// shifted moves the address by the given deltas on its relative axes.
// ok is false when the result would sit above row 1 or left of
// column A.
func (a Address) shifted(deltaRow, deltaCol int) (Address, bool) {
	out := a
	if !out.AbsCol {
		out.Col += deltaCol
	}
	if !out.AbsRow {
		out.Row += deltaRow
	}
	if out.Col < 0 || out.Row < 0 {
		return Address{}, false
	}
	return out, true
}

// cellKey is the cache and cycle-stack identity of an address. The
// "$" flags are spelling, not location, so they are not part of it.
type cellKey struct {
	col int
	row int
}

func (a Address) key() cellKey {
	return cellKey{col: a.Col, row: a.Row}
}

// Range is a rectangular block of cells, normalized so Start is the
// top-left corner.
type Range struct {
	Start Address
	End   Address
}

// NewRange builds the normalized block spanning a and b. The "$"
// flags follow their axes through any corner swap.
func NewRange(a, b Address) Range {
	r := Range{Start: a, End: b}
	if r.Start.Col > r.End.Col {
		r.Start.Col, r.End.Col = r.End.Col, r.Start.Col
		r.Start.AbsCol, r.End.AbsCol = r.End.AbsCol, r.Start.AbsCol
	}
	if r.Start.Row > r.End.Row {
		r.Start.Row, r.End.Row = r.End.Row, r.Start.Row
		r.Start.AbsRow, r.End.AbsRow = r.End.AbsRow, r.Start.AbsRow
	}
	return r
}

func (r Range) Width() int  { return r.End.Col - r.Start.Col + 1 }
func (r Range) Height() int { return r.End.Row - r.Start.Row + 1 }

// Cells lists every address in the block in row-major order.
func (r Range) Cells() []Address {
	out := make([]Address, 0, r.Width()*r.Height())
	for row := r.Start.Row; row <= r.End.Row; row++ {
		for col := r.Start.Col; col <= r.End.Col; col++ {
			out = append(out, Address{Col: col, Row: row})
		}
	}
	return out
}

func (r Range) String() string {
	return r.Start.String() + ":" + r.End.String()
}
