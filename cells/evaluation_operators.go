package cells

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// evalUnary numeric-coerces its operand; unary + is a no-op beyond
// that coercion.
func (ev *evaluation) evalUnary(node *UnaryExpr) Value {
	operand := ev.evalExpression(node.Right)
	if operand.IsError() {
		return operand
	}

	n, cerr := toNumber(operand)
	if cerr != nil {
		return NewError(cerr)
	}
	if node.Operator == tokenMinus {
		return NewNumber(-n)
	}
	return NewNumber(n)
}

// evalBinary evaluates left before right and returns the left
// operand's error without touching the right.
func (ev *evaluation) evalBinary(node *BinaryExpr) Value {
	left := ev.evalExpression(node.Left)
	if left.IsError() {
		return left
	}
	right := ev.evalExpression(node.Right)
	if right.IsError() {
		return right
	}

	switch node.Operator {
	case tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenCaret:
		return arithmetic(node.Operator, left, right)
	case tokenAmpersand:
		return concatValues(left, right)
	case tokenEQ, tokenNotEQ, tokenLT, tokenLTE, tokenGT, tokenGTE:
		return compareOp(node.Operator, left, right)
	}
	return newErrorf(ErrValue, "unsupported operator %s", node.Operator)
}

func arithmetic(op TokenType, left, right Value) Value {
	a, cerr := toNumber(left)
	if cerr != nil {
		return NewError(cerr)
	}
	b, cerr := toNumber(right)
	if cerr != nil {
		return NewError(cerr)
	}

	switch op {
	case tokenPlus:
		return NewNumber(a + b)
	case tokenMinus:
		return NewNumber(a - b)
	case tokenAsterisk:
		return NewNumber(a * b)
	case tokenSlash:
		if b == 0 {
			return newErrorf(ErrDiv0, "division by zero")
		}
		return NewNumber(a / b)
	case tokenCaret:
		out := math.Pow(a, b)
		if math.IsNaN(out) || math.IsInf(out, 0) {
			return newErrorf(ErrNum, "%v^%v has no numeric result", a, b)
		}
		return NewNumber(out)
	}
	return newErrorf(ErrValue, "unsupported operator %s", op)
}

func concatValues(left, right Value) Value {
	a, cerr := toText(left)
	if cerr != nil {
		return NewError(cerr)
	}
	b, cerr := toText(right)
	if cerr != nil {
		return NewError(cerr)
	}
	return NewText(a + b)
}

func compareOp(op TokenType, left, right Value) Value {
	c, cerr := compareValues(left, right)
	if cerr != nil {
		return NewError(cerr)
	}

	switch op {
	case tokenEQ:
		return NewBool(c == 0)
	case tokenNotEQ:
		return NewBool(c != 0)
	case tokenLT:
		return NewBool(c < 0)
	case tokenLTE:
		return NewBool(c <= 0)
	case tokenGT:
		return NewBool(c > 0)
	case tokenGTE:
		return NewBool(c >= 0)
	}
	return newErrorf(ErrValue, "unsupported operator %s", op)
}

// compareValues orders two scalars. Two numbers (empties count as
// zero) compare numerically; any other pairing compares as text,
// ignoring case.
func compareValues(left, right Value) (int, *CellError) {
	if isNumericOperand(left) && isNumericOperand(right) {
		a, cerr := toNumber(left)
		if cerr != nil {
			return 0, cerr
		}
		b, cerr := toNumber(right)
		if cerr != nil {
			return 0, cerr
		}
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		}
		return 0, nil
	}

	a, cerr := toText(left)
	if cerr != nil {
		return 0, cerr
	}
	b, cerr := toText(right)
	if cerr != nil {
		return 0, cerr
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b)), nil
}

func isNumericOperand(v Value) bool {
	return v.Kind() == KindNumber || v.Kind() == KindEmpty
}

// toNumber coerces a scalar for arithmetic: empties are 0, booleans
// are 1 and 0, text must parse as a number.
func toNumber(v Value) (float64, *CellError) {
	switch v.Kind() {
	case KindNumber:
		return v.Number(), nil
	case KindEmpty:
		return 0, nil
	case KindBool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case KindText:
		n, err := strconv.ParseFloat(v.Text(), 64)
		if err != nil {
			return 0, &CellError{Code: ErrValue, Message: fmt.Sprintf("%q is not a number", v.Text())}
		}
		return n, nil
	case KindError:
		return 0, v.Err()
	}
	return 0, &CellError{Code: ErrValue, Message: "a range is not a single value"}
}

// toText coerces a scalar for concatenation: numbers render in plain
// decimal, booleans as TRUE/FALSE, empties as "".
func toText(v Value) (string, *CellError) {
	switch v.Kind() {
	case KindText:
		return v.Text(), nil
	case KindNumber:
		return strconv.FormatFloat(v.Number(), 'f', -1, 64), nil
	case KindBool:
		if v.Bool() {
			return "TRUE", nil
		}
		return "FALSE", nil
	case KindEmpty:
		return "", nil
	case KindError:
		return "", v.Err()
	}
	return "", &CellError{Code: ErrValue, Message: "a range is not a single value"}
}

// toBool coerces a condition: booleans pass through, numbers are
// true when nonzero, empties are false. Text is not a condition.
func toBool(v Value) (bool, *CellError) {
	switch v.Kind() {
	case KindBool:
		return v.Bool(), nil
	case KindNumber:
		return v.Number() != 0, nil
	case KindEmpty:
		return false, nil
	case KindText:
		return false, &CellError{Code: ErrValue, Message: fmt.Sprintf("%q is not a logical value", v.Text())}
	case KindError:
		return false, v.Err()
	}
	return false, &CellError{Code: ErrValue, Message: "a range is not a single value"}
}
