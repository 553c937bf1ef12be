package cells

func registerLogicFunctions(e *Engine) {
	e.mustRegister(Function{
		Name: "IF", MinArgs: 3, MaxArgs: 3,
		Summary: "Pick a branch by a condition; only that branch evaluates.",
		lazy:    lazyIf,
	})
	e.mustRegister(Function{
		Name: "IFERROR", MinArgs: 2, MaxArgs: 2,
		Summary: "A value, or a fallback when the value is an error.",
		lazy:    lazyIfError,
	})
	e.mustRegister(Function{
		Name: "AND", MinArgs: 1, MaxArgs: -1,
		Summary: "TRUE when every logical value is true.",
		Call:    builtinAnd,
	})
	e.mustRegister(Function{
		Name: "OR", MinArgs: 1, MaxArgs: -1,
		Summary: "TRUE when any logical value is true.",
		Call:    builtinOr,
	})
	e.mustRegister(Function{
		Name: "NOT", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Negate a logical value.",
		Call:    builtinNot,
	})
	e.mustRegister(Function{
		Name: "TRUE", MinArgs: 0, MaxArgs: 0,
		Summary: "The boolean TRUE.",
		Call:    builtinTrue,
	})
	e.mustRegister(Function{
		Name: "FALSE", MinArgs: 0, MaxArgs: 0,
		Summary: "The boolean FALSE.",
		Call:    builtinFalse,
	})
	e.mustRegister(Function{
		Name: "ISBLANK", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "TRUE when the value is an empty cell.",
		Call:    builtinIsBlank, seesErrors: true,
	})
	e.mustRegister(Function{
		Name: "ISERROR", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "TRUE when the value is an error.",
		Call:    builtinIsError, seesErrors: true,
	})
}

func lazyIf(ev *evaluation, call *CallExpr) Value {
	cond := ev.evalExpression(call.Args[0])
	if cond.IsError() {
		return cond
	}
	truthy, cerr := toBool(cond)
	if cerr != nil {
		return NewError(cerr)
	}
	if truthy {
		return ev.evalExpression(call.Args[1])
	}
	return ev.evalExpression(call.Args[2])
}

func lazyIfError(ev *evaluation, call *CallExpr) Value {
	value := ev.evalExpression(call.Args[0])
	if value.IsError() {
		return ev.evalExpression(call.Args[1])
	}
	return value
}

// builtinAnd folds truthiness over scalars and range items. Text and
// empty cells inside a range do not participate; a scalar that is not
// a logical value is an error, as is an empty argument list of
// eligible values.
func builtinAnd(_ *Env, args []Value) Value {
	result := true
	seen := false
	for _, arg := range args {
		if arg.Kind() == KindRange {
			for _, item := range arg.Items() {
				if item.IsError() {
					return item
				}
				switch item.Kind() {
				case KindBool:
					seen = true
					result = result && item.Bool()
				case KindNumber:
					seen = true
					result = result && item.Number() != 0
				}
			}
			continue
		}
		b, cerr := toBool(arg)
		if cerr != nil {
			return NewError(cerr)
		}
		seen = true
		result = result && b
	}
	if !seen {
		return newErrorf(ErrValue, "AND has no logical values")
	}
	return NewBool(result)
}

func builtinOr(_ *Env, args []Value) Value {
	result := false
	seen := false
	for _, arg := range args {
		if arg.Kind() == KindRange {
			for _, item := range arg.Items() {
				if item.IsError() {
					return item
				}
				switch item.Kind() {
				case KindBool:
					seen = true
					result = result || item.Bool()
				case KindNumber:
					seen = true
					result = result || item.Number() != 0
				}
			}
			continue
		}
		b, cerr := toBool(arg)
		if cerr != nil {
			return NewError(cerr)
		}
		seen = true
		result = result || b
	}
	if !seen {
		return newErrorf(ErrValue, "OR has no logical values")
	}
	return NewBool(result)
}

func builtinNot(_ *Env, args []Value) Value {
	b, cerr := toBool(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewBool(!b)
}

func builtinTrue(_ *Env, _ []Value) Value  { return NewBool(true) }
func builtinFalse(_ *Env, _ []Value) Value { return NewBool(false) }

func builtinIsBlank(_ *Env, args []Value) Value {
	return NewBool(args[0].Kind() == KindEmpty)
}

func builtinIsError(_ *Env, args []Value) Value {
	return NewBool(args[0].IsError())
}
