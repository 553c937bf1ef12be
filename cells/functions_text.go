package cells

import (
	"strings"
	"unicode/utf8"
)

func registerTextFunctions(e *Engine) {
	e.mustRegister(Function{
		Name: "CONCATENATE", MinArgs: 1, MaxArgs: -1, Scalar: true,
		Summary: "Join values into one text.",
		Call:    builtinConcatenate,
	})
	e.mustRegister(Function{
		Name: "LEN", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Number of characters in a text.",
		Call:    builtinLen,
	})
	e.mustRegister(Function{
		Name: "UPPER", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Text in upper case.",
		Call:    builtinUpper,
	})
	e.mustRegister(Function{
		Name: "LOWER", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Text in lower case.",
		Call:    builtinLower,
	})
	e.mustRegister(Function{
		Name: "TRIM", MinArgs: 1, MaxArgs: 1, Scalar: true,
		Summary: "Text without surrounding whitespace.",
		Call:    builtinTrim,
	})
	e.mustRegister(Function{
		Name: "LEFT", MinArgs: 1, MaxArgs: 2, Scalar: true,
		Summary: "Leading characters of a text, one by default.",
		Call:    builtinLeft,
	})
	e.mustRegister(Function{
		Name: "RIGHT", MinArgs: 1, MaxArgs: 2, Scalar: true,
		Summary: "Trailing characters of a text, one by default.",
		Call:    builtinRight,
	})
}

func builtinConcatenate(_ *Env, args []Value) Value {
	var sb strings.Builder
	for _, arg := range args {
		s, cerr := toText(arg)
		if cerr != nil {
			return NewError(cerr)
		}
		sb.WriteString(s)
	}
	return NewText(sb.String())
}

// builtinLen counts characters, not bytes.
func builtinLen(_ *Env, args []Value) Value {
	s, cerr := toText(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewNumber(float64(utf8.RuneCountInString(s)))
}

func builtinUpper(_ *Env, args []Value) Value {
	s, cerr := toText(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewText(strings.ToUpper(s))
}

func builtinLower(_ *Env, args []Value) Value {
	s, cerr := toText(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewText(strings.ToLower(s))
}

func builtinTrim(_ *Env, args []Value) Value {
	s, cerr := toText(args[0])
	if cerr != nil {
		return NewError(cerr)
	}
	return NewText(strings.TrimSpace(s))
}

func builtinLeft(_ *Env, args []Value) Value {
	s, count, cerr := textAndCount(args)
	if cerr != nil {
		return NewError(cerr)
	}
	if count < 0 {
		return newErrorf(ErrValue, "LEFT count is negative")
	}
	runes := []rune(s)
	if count > len(runes) {
		count = len(runes)
	}
	return NewText(string(runes[:count]))
}

func builtinRight(_ *Env, args []Value) Value {
	s, count, cerr := textAndCount(args)
	if cerr != nil {
		return NewError(cerr)
	}
	if count < 0 {
		return newErrorf(ErrValue, "RIGHT count is negative")
	}
	runes := []rune(s)
	if count > len(runes) {
		count = len(runes)
	}
	return NewText(string(runes[len(runes)-count:]))
}

func textAndCount(args []Value) (string, int, *CellError) {
	s, cerr := toText(args[0])
	if cerr != nil {
		return "", 0, cerr
	}
	count := 1.0
	if len(args) == 2 {
		count, cerr = toNumber(args[1])
		if cerr != nil {
			return "", 0, cerr
		}
	}
	return s, int(count), nil
}
