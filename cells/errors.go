package cells

import "fmt"

// ErrorCode classifies a formula evaluation failure.
type ErrorCode int

const (
	// ErrParse marks a formula whose text could not be parsed.
	ErrParse ErrorCode = iota
	// ErrRef marks an identifier that is neither a function call nor
	// a cell address.
	ErrRef
	// ErrCycle marks a formula that depends on its own value.
	ErrCycle
	// ErrName marks a call to a function the engine does not know.
	ErrName
	// ErrValue marks an operand or argument of the wrong type.
	ErrValue
	// ErrArgs marks a call with the wrong number of arguments.
	ErrArgs
	// ErrDiv0 marks division by zero, including aggregates over zero
	// numeric values.
	ErrDiv0
	// ErrNum marks a numeric operation with no representable result.
	ErrNum
)

// Display returns the short code a grid shows in the failing cell.
func (c ErrorCode) Display() string {
	switch c {
	case ErrParse:
		return "#PARSE!"
	case ErrRef:
		return "#REF!"
	case ErrCycle:
		return "#CYCLE!"
	case ErrName:
		return "#NAME?"
	case ErrValue:
		return "#VALUE!"
	case ErrArgs:
		return "#N/A"
	case ErrDiv0:
		return "#DIV/0!"
	case ErrNum:
		return "#NUM!"
	}
	return "#ERROR!"
}

// CellError is the payload of an error value.
type CellError struct {
	Code    ErrorCode
	Message string
}

func (e *CellError) Error() string {
	if e.Message == "" {
		return e.Code.Display()
	}
	return fmt.Sprintf("%s %s", e.Code.Display(), e.Message)
}
