package cells

import (
	"strconv"
	"strings"
)

// Display renders the value the way a grid cell shows it: plain
// decimal numbers, TRUE/FALSE booleans, short codes for errors, and
// "" for empty cells.
func (v Value) Display() string {
	switch v.kind {
	case KindEmpty:
		return ""
	case KindNumber:
		return strconv.FormatFloat(v.data.(float64), 'f', -1, 64)
	case KindText:
		return v.data.(string)
	case KindBool:
		if v.data.(bool) {
			return "TRUE"
		}
		return "FALSE"
	case KindError:
		return v.data.(*CellError).Code.Display()
	case KindRange:
		items := v.data.([]Value)
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// String is a diagnostic rendering; grids should use Display.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "empty"
	case KindText:
		return strconv.Quote(v.data.(string))
	case KindError:
		return v.data.(*CellError).Error()
	default:
		return v.Display()
	}
}

// Equal reports whether two values hold the same kind and payload.
// Errors compare by code and message, ranges item by item.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindNumber:
		return v.data.(float64) == other.data.(float64)
	case KindText:
		return v.data.(string) == other.data.(string)
	case KindBool:
		return v.data.(bool) == other.data.(bool)
	case KindError:
		a, b := v.data.(*CellError), other.data.(*CellError)
		return a.Code == b.Code && a.Message == b.Message
	case KindRange:
		a, b := v.data.([]Value), other.data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	}
	return false
}
