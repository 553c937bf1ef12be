package cells

import (
	"math"
	"testing"
	"time"
)

// aggregateCells mixes the shapes an aggregate can meet: numbers, a
// formula producing text, a blank, and bare text.
func aggregateCells() map[string]string {
	return map[string]string{
		"A1": "1",
		"A2": `="5"`,
		"A3": "",
		"A4": "TRUE",
		"A5": "2",
	}
}

func TestAggregatesOverMixedRange(t *testing.T) {
	e := newTestEngine(t, aggregateCells())

	// Only the cells already holding numbers participate.
	wantNumber(t, e.EvaluateContent("=SUM(A1:A5)"), 3)
	wantNumber(t, e.EvaluateContent("=AVERAGE(A1:A5)"), 1.5)
	wantNumber(t, e.EvaluateContent("=MIN(A1:A5)"), 1)
	wantNumber(t, e.EvaluateContent("=MAX(A1:A5)"), 2)
	wantNumber(t, e.EvaluateContent("=COUNT(A1:A5)"), 2)
	wantNumber(t, e.EvaluateContent("=COUNTA(A1:A5)"), 4)
}

func TestAggregateScalarArgumentsCoerce(t *testing.T) {
	e := newTestEngine(t, aggregateCells())

	// A scalar "5" coerces where a range cell holding "5" does not.
	wantNumber(t, e.EvaluateContent(`=SUM("5",A1:A5)`), 8)
	wantNumber(t, e.EvaluateContent("=SUM(1,2,3)"), 6)
	wantNumber(t, e.EvaluateContent("=SUM(TRUE,1)"), 2)
	wantErrorCode(t, e.EvaluateContent(`=SUM(1,"x")`), ErrValue)
	wantNumber(t, e.EvaluateContent(`=COUNT(1,"5","x")`), 2)
}

func TestAggregatesWithNoNumbers(t *testing.T) {
	e := newTestEngine(t, aggregateCells())

	// A2:A4 holds text and a blank; nothing numeric to aggregate.
	for _, formula := range []string{
		"=AVERAGE(A2:A4)",
		"=MIN(A2:A4)",
		"=MAX(A2:A4)",
		"=MEDIAN(A2:A4)",
	} {
		wantErrorCode(t, e.EvaluateContent(formula), ErrDiv0)
	}
	wantNumber(t, e.EvaluateContent("=SUM(A2:A4)"), 0)
	wantNumber(t, e.EvaluateContent("=COUNT(A2:A4)"), 0)
}

func TestAggregateErrorInRange(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"A1": "1",
		"A2": "=1/0",
		"A3": "3",
	})

	wantErrorCode(t, e.EvaluateContent("=SUM(A1:A3)"), ErrDiv0)
	wantErrorCode(t, e.EvaluateContent("=AVERAGE(A1:A3)"), ErrDiv0)

	// COUNT and COUNTA never propagate range errors.
	wantNumber(t, e.EvaluateContent("=COUNT(A1:A3)"), 2)
	wantNumber(t, e.EvaluateContent("=COUNTA(A1:A3)"), 3)
}

func TestMedian(t *testing.T) {
	e := newTestEngine(t, nil)

	wantNumber(t, e.EvaluateContent("=MEDIAN(3,1,2)"), 2)
	wantNumber(t, e.EvaluateContent("=MEDIAN(4,1,3,2)"), 2.5)
	wantNumber(t, e.EvaluateContent("=MEDIAN(7)"), 7)
}

func TestRoundingFunctions(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		formula string
		want    float64
	}{
		{"=ABS(-3)", 3},
		{"=ABS(3)", 3},
		{"=ROUND(2.5)", 3},
		{"=ROUND(-2.5)", -3},
		{"=ROUND(2.345,2)", 2.35},
		{"=ROUND(7,0)", 7},
		{"=FLOOR(2.9)", 2},
		{"=FLOOR(-2.1)", -3},
		{"=CEILING(2.1)", 3},
		{"=CEILING(-2.9)", -2},
	}
	for _, tt := range tests {
		v := e.EvaluateContent(tt.formula)
		if v.Kind() != KindNumber || v.Number() != tt.want {
			t.Fatalf("%s = %s, want %v", tt.formula, v, tt.want)
		}
	}
}

func TestPowerSqrtMod(t *testing.T) {
	e := newTestEngine(t, nil)

	wantNumber(t, e.EvaluateContent("=SQRT(9)"), 3)
	wantErrorCode(t, e.EvaluateContent("=SQRT(-1)"), ErrNum)

	wantNumber(t, e.EvaluateContent("=POWER(2,10)"), 1024)
	wantErrorCode(t, e.EvaluateContent("=POWER(-1,0.5)"), ErrNum)

	wantNumber(t, e.EvaluateContent("=MOD(7,3)"), 1)
	wantNumber(t, e.EvaluateContent("=MOD(-3,2)"), 1)
	wantNumber(t, e.EvaluateContent("=MOD(3,-2)"), -1)
	wantNumber(t, e.EvaluateContent("=MOD(7.5,2)"), 1.5)
	wantErrorCode(t, e.EvaluateContent("=MOD(1,0)"), ErrDiv0)

	wantNumber(t, e.EvaluateContent("=PI()"), math.Pi)
}

func TestConcatenate(t *testing.T) {
	e := newTestEngine(t, map[string]string{"A1": "7"})

	wantText(t, e.EvaluateContent(`=CONCATENATE(1,"a",TRUE)`), "1aTRUE")
	wantText(t, e.EvaluateContent(`=CONCATENATE("x")`), "x")

	// A one-cell range collapses; a block does not.
	wantText(t, e.EvaluateContent(`=CONCATENATE(A1:A1,"!")`), "7!")
	wantErrorCode(t, e.EvaluateContent("=CONCATENATE(A1:A2)"), ErrValue)
}

func TestTextFunctions(t *testing.T) {
	e := newTestEngine(t, nil)

	wantNumber(t, e.EvaluateContent(`=LEN("héllo")`), 5)
	wantNumber(t, e.EvaluateContent(`=LEN("")`), 0)
	wantNumber(t, e.EvaluateContent("=LEN(123)"), 3)

	wantText(t, e.EvaluateContent(`=UPPER("miXed")`), "MIXED")
	wantText(t, e.EvaluateContent(`=LOWER("miXed")`), "mixed")
	wantText(t, e.EvaluateContent(`=TRIM("  pad  ")`), "pad")

	wantText(t, e.EvaluateContent(`=LEFT("hello")`), "h")
	wantText(t, e.EvaluateContent(`=LEFT("hello",3)`), "hel")
	wantText(t, e.EvaluateContent(`=LEFT("héllo",2)`), "hé")
	wantText(t, e.EvaluateContent(`=LEFT("hello",99)`), "hello")
	wantErrorCode(t, e.EvaluateContent(`=LEFT("x",-1)`), ErrValue)

	wantText(t, e.EvaluateContent(`=RIGHT("hello")`), "o")
	wantText(t, e.EvaluateContent(`=RIGHT("hello",3)`), "llo")
	wantText(t, e.EvaluateContent(`=RIGHT("héllo",4)`), "éllo")
	wantText(t, e.EvaluateContent(`=RIGHT("hello",0)`), "")
}

func TestIfEvaluatesOneBranch(t *testing.T) {
	grid := newCountingGrid(map[string]string{
		"A1": "=IF(TRUE,B1,C1)",
		"B1": "1",
		"C1": "2",
	})
	e := MustNewEngine(Config{Grid: grid})

	wantNumber(t, evalAt(t, e, "A1"), 1)
	if got := grid.fetches["C1"]; got != 0 {
		t.Fatalf("untaken branch fetched %d times", got)
	}

	wantNumber(t, e.EvaluateContent("=IF(TRUE,1,1/0)"), 1)
	wantNumber(t, e.EvaluateContent("=IF(FALSE,1/0,2)"), 2)
}

func TestIfConditions(t *testing.T) {
	e := newTestEngine(t, map[string]string{"Z9": ""})

	wantText(t, e.EvaluateContent(`=IF(1,"y","n")`), "y")
	wantText(t, e.EvaluateContent(`=IF(0,"y","n")`), "n")
	// A blank condition is false.
	wantText(t, e.EvaluateContent(`=IF(Z9,"y","n")`), "n")
	wantErrorCode(t, e.EvaluateContent(`=IF("x",1,2)`), ErrValue)
	wantErrorCode(t, e.EvaluateContent("=IF(1/0,1,2)"), ErrDiv0)
}

func TestIfError(t *testing.T) {
	e := newTestEngine(t, nil)

	wantText(t, e.EvaluateContent(`=IFERROR(1/0,"fallback")`), "fallback")
	wantNumber(t, e.EvaluateContent(`=IFERROR(5,"fallback")`), 5)
	wantText(t, e.EvaluateContent(`=IFERROR(FOO(),"fallback")`), "fallback")
}

func TestAndOrNot(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"A1": "1",
		"A2": "hello",
		"A3": "",
		"A4": "0",
	})

	wantBool(t, e.EvaluateContent("=AND(TRUE,1)"), true)
	wantBool(t, e.EvaluateContent("=AND(TRUE,0)"), false)
	wantBool(t, e.EvaluateContent("=OR(FALSE,0)"), false)
	wantBool(t, e.EvaluateContent("=OR(0,1)"), true)
	wantBool(t, e.EvaluateContent("=NOT(TRUE)"), false)
	wantBool(t, e.EvaluateContent("=NOT(0)"), true)
	wantBool(t, e.EvaluateContent("=TRUE()"), true)
	wantBool(t, e.EvaluateContent("=FALSE()"), false)

	// Text and blank range items sit out; A1 and A4 decide.
	wantBool(t, e.EvaluateContent("=AND(A1:A4)"), false)
	wantBool(t, e.EvaluateContent("=OR(A1:A4)"), true)

	// A range with nothing logical in it is an error, as is scalar text.
	wantErrorCode(t, e.EvaluateContent("=AND(A2:A3)"), ErrValue)
	wantErrorCode(t, e.EvaluateContent(`=AND("x")`), ErrValue)
}

func TestIsBlankIsError(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"A1": "=FOO()",
		"A2": "0",
	})

	wantBool(t, e.EvaluateContent("=ISBLANK(Z99)"), true)
	wantBool(t, e.EvaluateContent("=ISBLANK(A2)"), false)
	wantBool(t, e.EvaluateContent(`=ISBLANK("")`), false)

	wantBool(t, e.EvaluateContent("=ISERROR(1/0)"), true)
	wantBool(t, e.EvaluateContent("=ISERROR(A1)"), true)
	wantBool(t, e.EvaluateContent("=ISERROR(1)"), false)
}

func TestArityErrors(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []string{
		"=IF(1,2)",
		"=IF(1,2,3,4)",
		"=PI(1)",
		"=SUM()",
		"=ABS(1,2)",
		"=POWER(2)",
	}
	for _, formula := range tests {
		v := e.EvaluateContent(formula)
		wantErrorCode(t, v, ErrArgs)
		if got, want := v.Display(), "#N/A"; got != want {
			t.Fatalf("%s Display() = %q, want %q", formula, got, want)
		}
	}

	v := e.EvaluateContent("=IF(1,2)")
	if want := "IF expects 3 arguments, got 2"; v.Err().Message != want {
		t.Fatalf("message %q, want %q", v.Err().Message, want)
	}
}

func TestScalarFunctionsRejectBlocks(t *testing.T) {
	e := newTestEngine(t, map[string]string{"A1": "-4", "A2": "2"})

	wantErrorCode(t, e.EvaluateContent("=ABS(A1:A2)"), ErrValue)
	wantNumber(t, e.EvaluateContent("=ABS(A1:A1)"), 4)
}

func TestNowAndToday(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	e := MustNewEngine(Config{
		Grid:  mapGrid{"A1": "=NOW()", "A2": "=TODAY()", "A3": "=NOW()>=TODAY()"},
		Clock: func() time.Time { return fixed },
	})

	wantNumber(t, evalAt(t, e, "A1"), timeToSerial(fixed))
	wantNumber(t, evalAt(t, e, "A2"), math.Floor(timeToSerial(fixed)))
	wantBool(t, evalAt(t, e, "A3"), true)
}

func TestSerialDayAnchor(t *testing.T) {
	// The 1900 date system counts days from 1899-12-30T00:00 UTC.
	if got := timeToSerial(time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Fatalf("epoch serial = %v, want 0", got)
	}
	// Matches the serial spreadsheets report for this date.
	if got := timeToSerial(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)); got != 43831 {
		t.Fatalf("2020-01-01 serial = %v, want 43831", got)
	}
	if got := timeToSerial(time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)); got != 43831.5 {
		t.Fatalf("2020-01-01 noon serial = %v, want 43831.5", got)
	}
}

func TestNowCachesPerCell(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ticks int
	clock := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Hour)
	}
	e := MustNewEngine(Config{Grid: mapGrid{"A1": "=NOW()"}, Clock: clock})

	first := evalAt(t, e, "A1")
	second := evalAt(t, e, "A1")
	if !first.Equal(second) {
		t.Fatalf("cached NOW moved between reads: %s then %s", first, second)
	}

	e.InvalidateCache()
	third := evalAt(t, e, "A1")
	if first.Equal(third) {
		t.Fatalf("NOW did not move after invalidation")
	}
}

func TestRandUsesInjectedSource(t *testing.T) {
	seq := []float64{0.25, 0.75}
	var i int
	e := MustNewEngine(Config{
		Grid: mapGrid{},
		Rand: func() float64 { v := seq[i%len(seq)]; i++; return v },
	})

	wantNumber(t, e.EvaluateContent("=RAND()"), 0.25)
	wantNumber(t, e.EvaluateContent("=RAND()"), 0.75)
}
