package cells

import (
	"strconv"
	"strings"
)

// evaluation is the state of one evaluation pass: the engine it runs
// against and the set of addresses currently being evaluated, which
// detects reference cycles.
type evaluation struct {
	engine *Engine
	stack  map[cellKey]struct{}
}

func (e *Engine) newEvaluation() *evaluation {
	return &evaluation{engine: e, stack: make(map[cellKey]struct{})}
}

// evalCell resolves one cell: cycle check, cache check, then raw
// content. Every result lands in the cache, errors included. Caching
// a cycle error is sound because any cell that observes an on-stack
// address sits on that cycle's dependency path itself.
func (ev *evaluation) evalCell(addr Address) Value {
	key := addr.key()

	if _, onStack := ev.stack[key]; onStack {
		return newErrorf(ErrCycle, "%s depends on itself", addr)
	}
	if cached, ok := ev.engine.cache[key]; ok {
		return cached
	}

	ev.stack[key] = struct{}{}
	defer delete(ev.stack, key)

	// The grid sees the bare location; "$" pins are spelling.
	raw := ev.engine.grid.RawContent(Address{Col: key.col, Row: key.row})
	result := asScalar(ev.evalRaw(raw))
	ev.engine.cache[key] = result
	return result
}

// evalRaw classifies one cell's stored text: "" is empty, a leading
// "=" marks a formula, bare numeric text is a number, and anything
// else is text.
func (ev *evaluation) evalRaw(raw string) Value {
	if raw == "" {
		return NewEmpty()
	}
	if strings.HasPrefix(raw, "=") {
		return ev.evalFormula(raw[1:])
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return NewNumber(n)
	}
	return NewText(raw)
}

func (ev *evaluation) evalFormula(body string) Value {
	expr, err := parseFormula(body)
	if err != nil {
		return NewError(&CellError{Code: ErrParse, Message: err.Error()})
	}
	return ev.evalExpression(expr)
}

func (ev *evaluation) evalExpression(expr Expression) Value {
	switch node := expr.(type) {
	case *NumberLit:
		return NewNumber(node.Value)
	case *StringLit:
		return NewText(node.Value)
	case *BoolLit:
		return NewBool(node.Value)
	case *CellRefExpr:
		return ev.evalCell(node.Addr)
	case *RangeRefExpr:
		return ev.evalRangeRef(node)
	case *NameExpr:
		return newErrorf(ErrRef, "%s is not a cell address or function", node.Name)
	case *UnaryExpr:
		return ev.evalUnary(node)
	case *BinaryExpr:
		return ev.evalBinary(node)
	case *CallExpr:
		return ev.evalCall(node)
	}
	return newErrorf(ErrValue, "unsupported expression")
}

// evalRangeRef flattens the block row-major. Items keep whatever each
// cell evaluated to; the consuming function decides how empties,
// text and errors count.
func (ev *evaluation) evalRangeRef(node *RangeRefExpr) Value {
	block := NewRange(node.From, node.To)
	items := make([]Value, 0, block.Width()*block.Height())
	for _, addr := range block.Cells() {
		items = append(items, ev.evalCell(addr))
	}
	return newRange(items)
}

// asScalar rejects a range that reached a position where a single
// value is required: a cell result or a whole formula.
func asScalar(v Value) Value {
	if v.Kind() == KindRange {
		return newErrorf(ErrValue, "a range is not a single value")
	}
	return v
}
