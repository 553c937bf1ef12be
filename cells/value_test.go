package cells

import "testing"

func TestValueDisplay(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NewEmpty(), ""},
		{NewNumber(42), "42"},
		{NewNumber(2.5), "2.5"},
		{NewNumber(-0.125), "-0.125"},
		{NewNumber(1000000), "1000000"},
		{NewText("hello"), "hello"},
		{NewBool(true), "TRUE"},
		{NewBool(false), "FALSE"},
		{newErrorf(ErrParse, "x"), "#PARSE!"},
		{newErrorf(ErrRef, "x"), "#REF!"},
		{newErrorf(ErrCycle, "x"), "#CYCLE!"},
		{newErrorf(ErrName, "x"), "#NAME?"},
		{newErrorf(ErrValue, "x"), "#VALUE!"},
		{newErrorf(ErrArgs, "x"), "#N/A"},
		{newErrorf(ErrDiv0, "x"), "#DIV/0!"},
		{newErrorf(ErrNum, "x"), "#NUM!"},
		{newRange([]Value{NewNumber(1), NewText("x")}), "[1, x]"},
	}

	for _, tt := range tests {
		if got := tt.value.Display(); got != tt.want {
			t.Fatalf("%s Display() = %q, want %q", tt.value.Kind(), got, tt.want)
		}
	}
}

func TestValueEqual(t *testing.T) {
	if !NewNumber(2).Equal(NewNumber(2)) {
		t.Fatalf("equal numbers differ")
	}
	if NewNumber(2).Equal(NewText("2")) {
		t.Fatalf("number equals its text rendering")
	}
	if NewEmpty().Equal(NewNumber(0)) {
		t.Fatalf("empty equals zero")
	}
	if !NewEmpty().Equal(NewEmpty()) {
		t.Fatalf("empties differ")
	}
	if !newErrorf(ErrDiv0, "m").Equal(newErrorf(ErrDiv0, "m")) {
		t.Fatalf("identical errors differ")
	}
	if newErrorf(ErrDiv0, "m").Equal(newErrorf(ErrDiv0, "other")) {
		t.Fatalf("errors with different messages compare equal")
	}

	a := newRange([]Value{NewNumber(1), NewEmpty()})
	b := newRange([]Value{NewNumber(1), NewEmpty()})
	if !a.Equal(b) {
		t.Fatalf("identical ranges differ")
	}
	if a.Equal(newRange([]Value{NewNumber(1)})) {
		t.Fatalf("ranges of different lengths compare equal")
	}
}

func TestCellErrorError(t *testing.T) {
	err := &CellError{Code: ErrDiv0, Message: "division by zero"}
	if got, want := err.Error(), "#DIV/0! division by zero"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
