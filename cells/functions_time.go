package cells

import (
	"math"
	"time"
)

// Serial day numbers in the 1900 date system, counted from
// 1899-12-30T00:00 so that serials for dates from March 1900 on match
// the usual spreadsheet values. Fractions carry the time of day.
const (
	serialEpochMS = -2209161600000
	msPerDay      = 86400000
)

func registerTimeFunctions(e *Engine) {
	e.mustRegister(Function{
		Name: "NOW", MinArgs: 0, MaxArgs: 0,
		Summary: "The current date and time as a serial day number.",
		Call:    builtinNow,
	})
	e.mustRegister(Function{
		Name: "TODAY", MinArgs: 0, MaxArgs: 0,
		Summary: "The current date as a whole serial day number.",
		Call:    builtinToday,
	})
	e.mustRegister(Function{
		Name: "RAND", MinArgs: 0, MaxArgs: 0,
		Summary: "A random number in [0, 1).",
		Call:    builtinRand,
	})
}

func timeToSerial(t time.Time) float64 {
	ms := t.UnixMilli() - serialEpochMS
	return float64(ms) / float64(msPerDay)
}

func builtinNow(env *Env, _ []Value) Value {
	return NewNumber(timeToSerial(env.Clock()))
}

func builtinToday(env *Env, _ []Value) Value {
	return NewNumber(math.Floor(timeToSerial(env.Clock())))
}

func builtinRand(env *Env, _ []Value) Value {
	return NewNumber(env.Rand())
}
