package loader

import (
	"fmt"
	"math"
)

// floatTolerance absorbs rounding differences between evaluator
// arithmetic and the JSON-encoded expectations.
const floatTolerance = 1e-9

// CompareResults compares an evaluation result against the expected
// fixture value. Numbers compare by value regardless of Go subtype, so
// an int 3 from arithmetic normalization matches the float64 3 that
// encoding/json produces.
func CompareResults(actual, expected any) (bool, string) {
	if !deepEqual(actual, expected) {
		return false, fmt.Sprintf(
			"result mismatch\n  Expected: %#v\n  Got:      %#v",
			expected, actual)
	}
	return true, ""
}

func deepEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if aNum, ok := toNumber(a); ok {
		bNum, ok := toNumber(b)
		return ok && numbersClose(aNum, bNum)
	}

	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
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
			if !present || !deepEqual(v, bVal) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// toNumber unifies the numeric types a result can carry. Booleans and
// numeric strings deliberately do not count: the fixtures distinguish
// 1 from "1" and from true.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

func numbersClose(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < floatTolerance
}
