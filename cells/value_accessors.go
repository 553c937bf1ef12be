package cells

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsEmpty() bool { return v.kind == KindEmpty }
func (v Value) IsError() bool { return v.kind == KindError }

// Number returns the numeric payload, or 0 for any other kind. Check
// Kind first when the distinction matters.
func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

func (v Value) Text() string {
	if v.kind == KindText {
		return v.data.(string)
	}
	return ""
}

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Err() *CellError {
	if v.kind == KindError {
		return v.data.(*CellError)
	}
	return nil
}

// Items returns the cell values a range argument flattened to, in
// row-major order, or nil for non-range values.
func (v Value) Items() []Value {
	if v.kind == KindRange {
		return v.data.([]Value)
	}
	return nil
}
