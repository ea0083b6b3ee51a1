// Package coerce implements the loose value-coercion rules shared by the
// GoLogic comparison, arithmetic and equality operators.
//
// The rules replicate the loosely-typed semantics of the JsonLogic
// reference implementations:
//   - Truthiness: null, false, zero, empty string, empty array and empty
//     object are falsy; everything else is truthy.
//   - Soft equality compares string representations when either operand is
//     a string, truthiness when either operand is a boolean, and structure
//     otherwise.
//   - Hard equality requires the same runtime type, except that any two
//     numeric operands are compared by numeric value (1 === 1.0).
//   - Ordering coerces to numbers when either operand looks numeric and
//     never fails: a value that cannot be coerced compares as false.
//
// Coercion failures are reported through ok booleans, never errors. The
// "fail soft" policy of the evaluator depends on this.
package coerce

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// maxExactInt is the largest float64 magnitude that still represents
// consecutive integers exactly. Integral floats beyond it stay floats.
const maxExactInt = 1 << 53

// Truthy reports whether v is truthy under standard boolean coercion.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		if f, ok := ToFloat(v); ok {
			return f != 0
		}
		return true
	}
}

// Falsy is the negation of Truthy.
func Falsy(v any) bool {
	return !Truthy(v)
}

// IsNumeric reports whether v is a numeric value. Booleans and numeric
// strings do not count; they are coerced explicitly where an operator
// calls for it.
func IsNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

// ToFloat converts a numeric value or a numeric string to float64.
func ToFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToNumeric converts v to a normalized numeric value: an int when the
// value is integral, a float64 otherwise. Strings containing "." parse as
// float, other numeric strings parse as integer; booleans map to 0 and 1.
// The ok result is false when v cannot be interpreted numerically.
func ToNumeric(v any) (any, bool) {
	switch val := v.(type) {
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(val)
		if strings.Contains(s, ".") {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, false
			}
			return normalizeFloat(f), true
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		return i, true
	case int:
		return val, true
	case float64:
		return normalizeFloat(val), true
	default:
		if IsNumeric(v) {
			f, _ := ToFloat(v)
			return normalizeFloat(f), true
		}
		return nil, false
	}
}

// normalizeFloat collapses integral floats to int.
func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < maxExactInt {
		return int(f)
	}
	return f
}

// Stringify renders v using JSON spellings: null, true/false, integral
// numbers without a decimal part, arrays as comma-joined elements and
// objects as JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			if item == nil {
				continue // null renders empty inside arrays
			}
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		if f, ok := ToFloat(v); ok {
			if n, isInt := normalizeFloat(f).(int); isInt {
				return strconv.Itoa(n)
			}
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// SoftEquals implements loose equality ("=="). If either operand is a
// string both are compared by string representation; if either is a
// boolean both are compared by truthiness; otherwise the comparison is
// structural with numeric unification.
func SoftEquals(a, b any) bool {
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aStr || bStr {
		return Stringify(a) == Stringify(b)
	}
	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aBool || bBool {
		return Truthy(a) == Truthy(b)
	}
	return deepEquals(a, b)
}

// HardEquals implements strict equality ("==="): identical runtime type
// and equal value, except that numeric operands of any subtype compare by
// numeric value.
func HardEquals(a, b any) bool {
	if IsNumeric(a) && IsNumeric(b) {
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return fa == fb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return deepEquals(a, b)
}

// deepEquals compares structurally with numeric unification at every level.
func deepEquals(a, b any) bool {
	if IsNumeric(a) && IsNumeric(b) {
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return fa == fb
	}
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEquals(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bVal, present := bv[k]
			if !present || !deepEquals(v, bVal) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Less implements the binary ordering core. When either operand is
// numeric both are coerced (numeric strings included); coercion failure
// compares as false. Two strings compare lexicographically. Any other
// combination is unordered and compares as false.
func Less(a, b any) bool {
	if IsNumeric(a) || IsNumeric(b) {
		fa, aOK := ToFloat(a)
		fb, bOK := ToFloat(b)
		if !aOK || !bOK {
			return false
		}
		return fa < fb
	}
	as, aOK := a.(string)
	bs, bOK := b.(string)
	if aOK && bOK {
		return as < bs
	}
	return false
}

// LessOrEqual is the non-strict ordering core: it additionally treats
// loose-equal operands as satisfying the bound.
func LessOrEqual(a, b any) bool {
	return Less(a, b) || SoftEquals(a, b)
}
