// Package sheet holds raw cell text for the cells engine: a sparse
// in-memory grid plus YAML and CSV load/save. A Sheet implements
// cells.Grid, so it plugs straight into cells.Config.
package sheet

import (
	"sort"

	"github.com/cellscript/cellscript/cells"
)

// Sheet is a sparse grid of raw cell text. The zero value is not
// usable; construct with New.
type Sheet struct {
	Title string

	cells map[cells.Address]string
}

func New() *Sheet {
	return &Sheet{cells: make(map[cells.Address]string)}
}

// Set stores raw content under an A1-style reference. Empty content
// deletes the cell, keeping the sheet sparse.
func (s *Sheet) Set(ref, raw string) error {
	addr, err := cells.ParseAddress(ref)
	if err != nil {
		return err
	}
	s.SetAddr(addr, raw)
	return nil
}

// SetAddr is Set for an already-parsed address.
func (s *Sheet) SetAddr(addr cells.Address, raw string) {
	addr.AbsCol, addr.AbsRow = false, false
	if raw == "" {
		delete(s.cells, addr)
		return
	}
	s.cells[addr] = raw
}

// Raw returns the content stored under an A1-style reference, or ""
// when the reference does not parse or the cell is unset.
func (s *Sheet) Raw(ref string) string {
	addr, err := cells.ParseAddress(ref)
	if err != nil {
		return ""
	}
	return s.RawContent(addr)
}

// RawContent implements cells.Grid.
func (s *Sheet) RawContent(addr cells.Address) string {
	addr.AbsCol, addr.AbsRow = false, false
	return s.cells[addr]
}

// Len counts the set cells.
func (s *Sheet) Len() int { return len(s.cells) }

// Addresses lists every set cell in row-major order.
func (s *Sheet) Addresses() []cells.Address {
	out := make([]cells.Address, 0, len(s.cells))
	for addr := range s.cells {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Bounds returns the rectangle from A1 to the bottom-right set cell,
// and false when the sheet is empty.
func (s *Sheet) Bounds() (cells.Range, bool) {
	if len(s.cells) == 0 {
		return cells.Range{}, false
	}
	var maxCol, maxRow int
	for addr := range s.cells {
		if addr.Col > maxCol {
			maxCol = addr.Col
		}
		if addr.Row > maxRow {
			maxRow = addr.Row
		}
	}
	return cells.NewRange(cells.Address{}, cells.Address{Col: maxCol, Row: maxRow}), true
}
