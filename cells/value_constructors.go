package cells

import "fmt"

func NewNumber(n float64) Value { return Value{kind: KindNumber, data: n} }
func NewText(s string) Value    { return Value{kind: KindText, data: s} }
func NewBool(b bool) Value      { return Value{kind: KindBool, data: b} }
func NewEmpty() Value           { return Value{kind: KindEmpty} }

func NewError(err *CellError) Value { return Value{kind: KindError, data: err} }

func newErrorf(code ErrorCode, format string, args ...any) Value {
	return NewError(&CellError{Code: code, Message: fmt.Sprintf(format, args...)})
}

func newRange(items []Value) Value { return Value{kind: KindRange, data: items} }
