package registry

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/sandrolain/gologic/pkg/coerce"
	"github.com/sandrolain/gologic/pkg/ext"
)

// Built-in operators follow the fail-soft policy: wrong arity, type
// mismatches and non-coercible operands degrade to a sentinel value
// (false for comparisons, nil for arithmetic) instead of erroring.

func commonOperations(logger *slog.Logger) map[string]OperationFunc {
	return map[string]OperationFunc{
		"==":     opSoftEquals,
		"!=":     opNotSoftEquals,
		"===":    opHardEquals,
		"!==":    opNotHardEquals,
		"<":      opLess,
		"<=":     opLessOrEqual,
		">":      opGreater,
		">=":     opGreaterOrEqual,
		"!":      opNot,
		"!!":     opTruthy,
		"log":    opLog(logger),
		"in":     opIn,
		"cat":    opCat,
		"substr": opSubstr,
		"+":      opAdd,
		"-":      opSubtract,
		"*":      opMultiply,
		"/":      opDivide,
		"%":      opModulo,
		"min":    opMin,
		"max":    opMax,
		"merge":  opMerge,
		"method": opMethod,
	}
}

func deprecatedOperations() map[string]OperationFunc {
	return map[string]OperationFunc{
		"count": opCount,
	}
}

// arg returns args[i] or nil when absent.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// Comparisons

func opSoftEquals(_ context.Context, args ...any) (any, error) {
	return coerce.SoftEquals(arg(args, 0), arg(args, 1)), nil
}

func opNotSoftEquals(_ context.Context, args ...any) (any, error) {
	return !coerce.SoftEquals(arg(args, 0), arg(args, 1)), nil
}

func opHardEquals(_ context.Context, args ...any) (any, error) {
	return coerce.HardEquals(arg(args, 0), arg(args, 1)), nil
}

func opNotHardEquals(_ context.Context, args ...any) (any, error) {
	return !coerce.HardEquals(arg(args, 0), arg(args, 1)), nil
}

// opLess implements "<" including the chained ternary range form:
// {"<": [a, b, c]} means a < b && b < c (exclusive between).
func opLess(_ context.Context, args ...any) (any, error) {
	if len(args) < 2 {
		return false, nil
	}
	if !coerce.Less(args[0], args[1]) {
		return false, nil
	}
	if len(args) >= 3 {
		return coerce.Less(args[1], args[2]), nil
	}
	return true, nil
}

// opLessOrEqual implements "<=" including the inclusive-between ternary form.
func opLessOrEqual(_ context.Context, args ...any) (any, error) {
	if len(args) < 2 {
		return false, nil
	}
	if !coerce.LessOrEqual(args[0], args[1]) {
		return false, nil
	}
	if len(args) >= 3 {
		return coerce.LessOrEqual(args[1], args[2]), nil
	}
	return true, nil
}

func opGreater(_ context.Context, args ...any) (any, error) {
	return coerce.Less(arg(args, 1), arg(args, 0)), nil
}

func opGreaterOrEqual(_ context.Context, args ...any) (any, error) {
	return coerce.LessOrEqual(arg(args, 1), arg(args, 0)), nil
}

func opNot(_ context.Context, args ...any) (any, error) {
	return coerce.Falsy(arg(args, 0)), nil
}

func opTruthy(_ context.Context, args ...any) (any, error) {
	return coerce.Truthy(arg(args, 0)), nil
}

// opLog writes its first argument to the structured log at info level and
// returns it unchanged, so the operator is transparent to the result.
func opLog(logger *slog.Logger) OperationFunc {
	return func(ctx context.Context, args ...any) (any, error) {
		value := arg(args, 0)
		logger.InfoContext(ctx, "jsonlogic log", "value", value)
		return value, nil
	}
}

// opIn reports membership: element of an array, substring of a string,
// key of an object. Unsupported containers compare as false, never error.
func opIn(_ context.Context, args ...any) (any, error) {
	needle := arg(args, 0)
	switch container := arg(args, 1).(type) {
	case string:
		s, ok := needle.(string)
		if !ok {
			return false, nil
		}
		return strings.Contains(container, s), nil
	case []any:
		for _, item := range container {
			if coerce.HardEquals(item, needle) {
				return true, nil
			}
		}
		return false, nil
	case map[string]any:
		key, ok := needle.(string)
		if !ok {
			return false, nil
		}
		_, present := container[key]
		return present, nil
	default:
		return false, nil
	}
}

// String operations

func opCat(_ context.Context, args ...any) (any, error) {
	var out []byte
	for _, a := range args {
		out = append(out, coerce.Stringify(a)...)
	}
	return string(out), nil
}

// opSubstr slices a string with sequence-slicing conventions: negative
// start counts from the end, negative length trims from the end, omitted
// length runs to the end.
func opSubstr(_ context.Context, args ...any) (any, error) {
	source, ok := arg(args, 0).(string)
	if !ok {
		source = coerce.Stringify(arg(args, 0))
	}
	runes := []rune(source)

	start, ok := toInt(arg(args, 1))
	if !ok {
		return source, nil
	}
	if start < 0 {
		start += len(runes)
		if start < 0 {
			start = 0
		}
	}
	if start >= len(runes) {
		return "", nil
	}
	runes = runes[start:]

	if len(args) < 3 || args[2] == nil {
		return string(runes), nil
	}
	length, ok := toInt(args[2])
	if !ok {
		return string(runes), nil
	}
	if length < 0 {
		length += len(runes)
	}
	if length <= 0 {
		return "", nil
	}
	if length > len(runes) {
		length = len(runes)
	}
	return string(runes[:length]), nil
}

func toInt(v any) (int, bool) {
	f, ok := coerce.ToFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Arithmetic

func opAdd(_ context.Context, args ...any) (any, error) {
	sum := 0.0
	for _, a := range args {
		f, ok := numericOperand(a)
		if !ok {
			return nil, nil
		}
		sum += f
	}
	n, _ := coerce.ToNumeric(sum)
	return n, nil
}

// opSubtract is unary negation with one argument, binary difference with
// two or more (extra arguments are ignored).
func opSubtract(_ context.Context, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	a, ok := numericOperand(args[0])
	if !ok {
		return nil, nil
	}
	if len(args) == 1 {
		n, _ := coerce.ToNumeric(-a)
		return n, nil
	}
	b, ok := numericOperand(args[1])
	if !ok {
		return nil, nil
	}
	n, _ := coerce.ToNumeric(a - b)
	return n, nil
}

func opMultiply(_ context.Context, args ...any) (any, error) {
	product := 1.0
	for _, a := range args {
		f, ok := numericOperand(a)
		if !ok {
			return nil, nil
		}
		product *= f
	}
	n, _ := coerce.ToNumeric(product)
	return n, nil
}

func opDivide(_ context.Context, args ...any) (any, error) {
	a, aOK := numericOperand(arg(args, 0))
	b, bOK := numericOperand(arg(args, 1))
	if !aOK || !bOK || b == 0 {
		return nil, nil
	}
	n, _ := coerce.ToNumeric(a / b)
	return n, nil
}

func opModulo(_ context.Context, args ...any) (any, error) {
	a, aOK := numericOperand(arg(args, 0))
	b, bOK := numericOperand(arg(args, 1))
	if !aOK || !bOK || b == 0 {
		return nil, nil
	}
	n, _ := coerce.ToNumeric(math.Mod(a, b))
	return n, nil
}

func opMin(_ context.Context, args ...any) (any, error) {
	return foldNumeric(args, math.Min)
}

func opMax(_ context.Context, args ...any) (any, error) {
	return foldNumeric(args, math.Max)
}

func foldNumeric(args []any, pick func(float64, float64) float64) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	best, ok := numericOperand(args[0])
	if !ok {
		return nil, nil
	}
	for _, a := range args[1:] {
		f, ok := numericOperand(a)
		if !ok {
			return nil, nil
		}
		best = pick(best, f)
	}
	n, _ := coerce.ToNumeric(best)
	return n, nil
}

// numericOperand normalizes an operand for arithmetic: numbers, numeric
// strings and booleans coerce; anything else fails.
func numericOperand(v any) (float64, bool) {
	n, ok := coerce.ToNumeric(v)
	if !ok {
		return 0, false
	}
	return coerce.ToFloat(n)
}

// opMerge flattens one level: array arguments splice into the result,
// everything else appends as a single element.
func opMerge(_ context.Context, args ...any) (any, error) {
	merged := make([]any, 0, len(args))
	for _, a := range args {
		if items, ok := a.([]any); ok {
			merged = append(merged, items...)
			continue
		}
		merged = append(merged, a)
	}
	return merged, nil
}

// opMethod reads a property or invokes a method on the evaluated first
// argument: {"method": [object, name, args?]}. Resolution and invocation
// go through pkg/ext; any failure degrades to nil.
func opMethod(ctx context.Context, args ...any) (any, error) {
	name, ok := arg(args, 1).(string)
	if !ok {
		return nil, nil
	}
	target, err := ext.Resolve(arg(args, 0), []string{name})
	if err != nil {
		return nil, nil
	}
	if !ext.IsInvocable(target) {
		return target, nil
	}
	callArgs, _ := arg(args, 2).([]any)
	result, err := ext.Call(ctx, target, callArgs...)
	if err != nil {
		return nil, nil
	}
	return result, nil
}

// Deprecated operators

func opCount(_ context.Context, args ...any) (any, error) {
	count := 0
	for _, a := range args {
		if coerce.Truthy(a) {
			count++
		}
	}
	return count, nil
}
