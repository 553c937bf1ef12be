package cells

import (
	"math"
	"sort"
)

func registerMathFunctions(e *Engine) {
	e.mustRegister(Function{
		Name: "SUM", MinArgs: 1, MaxArgs: -1,
		Summary: "Add numbers; non-numeric range cells are skipped.",
		Call:    builtinSum,
	})
	e.mustRegister(Function{
		Name: "AVERAGE", MinArgs: 1, MaxArgs: -1,
		Summary: "Arithmetic mean of the numeric values.",
		Call:    builtinAverage,
	})
	e.mustRegister(Function{
		Name: "MIN", MinArgs: 1, MaxArgs: -1,
		Summary: "Smallest numeric value.",
		Call:    builtinMin,
	})
	e.mustRegister(Function{
		Name: "MAX", MinArgs: 1, MaxArgs: -1,
		Summary: "Largest numeric value.",
		Call:    builtinMax,
	})
	e.mustRegister(Function{
		Name: "COUNT", MinArgs: 1, MaxArgs: -1,
		Summary: "Count the numeric values.",
		Call:    builtinCount,
	})
	e.mustRegister(Function{
		Name: "COUNTA", MinArgs: 1, MaxArgs: -1,
		Summary: "Count the non-empty values.",
		Call:    builtinCountA,
	})
	e.mustRegister(Function{
		Name: "MEDIAN", MinArgs: 1, MaxArgs: -1,
		Summary: "Middle numeric value; mean of the two middles.",
		Call:    builtinMedian,
	})
	e.mustRegister(Function{
		Name: "ABS", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Absolute value.",
		Call:    builtinAbs,
	})
	e.mustRegister(Function{
		Name: "ROUND", MinArgs: 1, MaxArgs: 2, Scalar: true,
		Summary: "Round half away from zero, optionally to a number of places.",
		Call:    builtinRound,
	})
	e.mustRegister(Function{
		Name: "FLOOR", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Round down to the nearest integer.",
		Call:    builtinFloor,
	})
	e.mustRegister(Function{
		Name: "CEILING", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Round up to the nearest integer.",
		Call:    builtinCeiling,
	})
	e.mustRegister(Function{
		Name: "SQRT", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Square root; negative input is an error.",
		Call:    builtinSqrt,
	})
	e.mustRegister(Function{
		Name: "POWER", MinArgs: 2, MaxArgs: 2, Scalar: true,
		Summary: "Raise a base to an exponent.",
		Call:    builtinPower,
	})
	e.mustRegister(Function{
		Name: "MOD", MinArgs: 2, MaxArgs: 2, Scalar: true,
		Summary: "Remainder after division, with the divisor's sign.",
		Call:    builtinMod,
	})
	e.mustRegister(Function{
		Name: "PI", MinArgs: 0, MaxArgs: 0,
		Summary: "The constant pi.",
		Call:    builtinPi,
	})
}

func builtinSum(_ *Env, args []Value) Value {
	nums, cerr := aggregateNumbers(args)
	if cerr != nil {
		return NewError(cerr)
	}
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return NewNumber(total)
}

func builtinAverage(_ *Env, args []Value) Value {
	nums, cerr := aggregateNumbers(args)
	if cerr != nil {
		return NewError(cerr)
	}
	if len(nums) == 0 {
		return newErrorf(ErrDiv0, "AVERAGE of no numeric values")
	}
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return NewNumber(total / float64(len(nums)))
}

func builtinMin(_ *Env, args []Value) Value {
	nums, cerr := aggregateNumbers(args)
	if cerr != nil {
		return NewError(cerr)
	}
	if len(nums) == 0 {
		return newErrorf(ErrDiv0, "MIN of no numeric values")
	}
	out := nums[0]
	for _, n := range nums[1:] {
		if n < out {
			out = n
		}
	}
	return NewNumber(out)
}

func builtinMax(_ *Env, args []Value) Value {
	nums, cerr := aggregateNumbers(args)
	if cerr != nil {
		return NewError(cerr)
	}
	if len(nums) == 0 {
		return newErrorf(ErrDiv0, "MAX of no numeric values")
	}
	out := nums[0]
	for _, n := range nums[1:] {
		if n > out {
			out = n
		}
	}
	return NewNumber(out)
}

// builtinCount counts numeric values: range items only when they hold
// a number, scalar arguments whenever they coerce to one. Errors in
// ranges do not count and do not propagate.
func builtinCount(_ *Env, args []Value) Value {
	count := 0
	for _, arg := range args {
		if arg.Kind() == KindRange {
			for _, item := range arg.Items() {
				if item.Kind() == KindNumber {
					count++
				}
			}
			continue
		}
		if _, cerr := toNumber(arg); cerr == nil {
			count++
		}
	}
	return NewNumber(float64(count))
}

func builtinCountA(_ *Env, args []Value) Value {
	count := 0
	for _, arg := range args {
		if arg.Kind() == KindRange {
			for _, item := range arg.Items() {
				if item.Kind() != KindEmpty {
					count++
				}
			}
			continue
		}
		if arg.Kind() != KindEmpty {
			count++
		}
	}
	return NewNumber(float64(count))
}

func builtinMedian(_ *Env, args []Value) Value {
	nums, cerr := aggregateNumbers(args)
	if cerr != nil {
		return NewError(cerr)
	}
	if len(nums) == 0 {
		return newErrorf(ErrDiv0, "MEDIAN of no numeric values")
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return NewNumber(nums[mid])
	}
	return NewNumber((nums[mid-1] + nums[mid]) / 2)
}

func builtinAbs(_ *Env, args []Value) Value {
	n, cerr := toNumber(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewNumber(math.Abs(n))
}

func builtinRound(_ *Env, args []Value) Value {
	n, cerr := toNumber(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	places := 0.0
	if len(args) == 2 {
		places, cerr = toNumber(args[1])
		if cerr != nil {
			return NewError(cerr)
		}
	}
	shift := math.Pow(10, math.Trunc(places))
	return NewNumber(math.Round(n*shift) / shift)
}

func builtinFloor(_ *Env, args []Value) Value {
	n, cerr := toNumber(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewNumber(math.Floor(n))
}

func builtinCeiling(_ *Env, args []Value) Value {
	n, cerr := toNumber(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewNumber(math.Ceil(n))
}

func builtinSqrt(_ *Env, args []Value) Value {
	n, cerr := toNumber(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	if n < 0 {
		return newErrorf(ErrNum, "SQRT of a negative number")
	}
	return NewNumber(math.Sqrt(n))
}

func builtinPower(_ *Env, args []Value) Value {
	base, cerr := toNumber(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	exp, cerr := toNumber(args[1])
	if cerr != nil {
		return NewError(cerr)
	}
	out := math.Pow(base, exp)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return newErrorf(ErrNum, "POWER(%v, %v) has no numeric result", base, exp)
	}
	return NewNumber(out)
}

func builtinMod(_ *Env, args []Value) Value {
	n, cerr := toNumber(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	d, cerr := toNumber(args[1])
	if cerr != nil {
		return NewError(cerr)
	}
	if d == 0 {
		return newErrorf(ErrDiv0, "MOD by zero")
	}
	out := math.Mod(n, d)
	if out != 0 && (out < 0) != (d < 0) {
		out += d
	}
	return NewNumber(out)
}

func builtinPi(_ *Env, _ []Value) Value {
	return NewNumber(math.Pi)
}
