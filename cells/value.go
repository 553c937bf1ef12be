package cells

type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindText
	KindBool
	KindError
	KindRange
)

// Value is the result of evaluating a cell or a formula expression.
// Failures travel as values of KindError rather than Go errors, so
// they can flow through dependent formulas the way grids expect.
type Value struct {
	kind ValueKind
	data any
}

func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindError:
		return "error"
	case KindRange:
		return "range"
	}
	return "unknown"
}
