package cells

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Function describes one callable in the formula language.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int    // -1 accepts any number of arguments past MinArgs
	Scalar  bool   // rejects multi-cell range arguments
	Summary string // one-line catalog text

	// Call receives evaluated arguments. Multi-cell range arguments
	// arrive as KindRange values unless Scalar is set; a one-cell
	// range always collapses to its single value for Scalar
	// functions. Error arguments are propagated before Call runs.
	Call func(env *Env, args []Value) Value

	// lazy forms (IF, IFERROR) take over argument evaluation.
	lazy func(ev *evaluation, call *CallExpr) Value

	// seesErrors hands error arguments to Call instead of
	// propagating them (ISERROR, ISBLANK).
	seesErrors bool
}

func registerBuiltins(e *Engine) {
	registerMathFunctions(e)
	registerTextFunctions(e)
	registerLogicFunctions(e)
	registerTimeFunctions(e)
}

// evalCall dispatches a function call: name lookup, arity check, then
// either the lazy form or left-to-right argument evaluation.
func (ev *evaluation) evalCall(call *CallExpr) Value {
	fn, ok := ev.engine.functions[strings.ToUpper(call.Name)]
	if !ok {
		return ev.unknownFunction(call.Name)
	}

	n := len(call.Args)
	if n < fn.MinArgs || (fn.MaxArgs >= 0 && n > fn.MaxArgs) {
		return newErrorf(ErrArgs, "%s expects %s, got %d", strings.ToUpper(fn.Name), arityText(fn), n)
	}

	if fn.lazy != nil {
		return fn.lazy(ev, call)
	}

	args := make([]Value, len(call.Args))
	for i, argExpr := range call.Args {
		arg := ev.evalExpression(argExpr)
		if arg.Kind() == KindRange && fn.Scalar {
			items := arg.Items()
			if len(items) != 1 {
				return newErrorf(ErrValue, "%s does not accept multi-cell ranges", strings.ToUpper(fn.Name))
			}
			arg = items[0]
		}
		if arg.IsError() && !fn.seesErrors {
			return arg
		}
		args[i] = arg
	}

	return fn.Call(&ev.engine.env, args)
}

func arityText(fn Function) string {
	switch {
	case fn.MaxArgs < 0 && fn.MinArgs == 1:
		return "at least 1 argument"
	case fn.MaxArgs < 0:
		return fmt.Sprintf("at least %d arguments", fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs && fn.MinArgs == 1:
		return "1 argument"
	case fn.MinArgs == fn.MaxArgs:
		return fmt.Sprintf("%d arguments", fn.MinArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", fn.MinArgs, fn.MaxArgs)
	}
}

// unknownFunction builds the name error, suggesting the closest
// registered name. The typed name is tried as a pattern inside known
// names and the known names as patterns inside it, so both "AVRAGE"
// and "SUMM" produce a suggestion.
func (ev *evaluation) unknownFunction(name string) Value {
	upper := strings.ToUpper(name)
	names := make([]string, 0, len(ev.engine.functions))
	for n := range ev.engine.functions {
		names = append(names, n)
	}

	ranks := fuzzy.RankFindFold(upper, names)
	if len(ranks) == 0 {
		for _, candidate := range names {
			if fuzzy.MatchFold(candidate, upper) {
				ranks = append(ranks, fuzzy.Rank{
					Source:   upper,
					Target:   candidate,
					Distance: fuzzy.LevenshteinDistance(upper, candidate),
				})
			}
		}
	}
	if len(ranks) == 0 {
		return newErrorf(ErrName, "unknown function %s", upper)
	}

	sort.Sort(ranks)
	return newErrorf(ErrName, "unknown function %s, did you mean %s?", upper, ranks[0].Target)
}

// aggregateNumbers walks scalar and range arguments, collecting the
// numeric items an aggregate consumes. Scalar arguments must coerce
// to a number; range items participate only when they already hold
// one, except that an error in a range stops the aggregate.
func aggregateNumbers(args []Value) ([]float64, *CellError) {
	var nums []float64
	for _, arg := range args {
		if arg.Kind() == KindRange {
			for _, item := range arg.Items() {
				switch item.Kind() {
				case KindNumber:
					nums = append(nums, item.Number())
				case KindError:
					return nil, item.Err()
				}
			}
			continue
		}
		n, cerr := toNumber(arg)
		if cerr != nil {
			return nil, cerr
		}
		nums = append(nums, n)
	}
	return nums, nil
}
