// Package types defines the core type system for GoLogic.
//
// This package contains:
//   - Rule classification: the tagged-union view of a JSON value as a
//     literal, an array of rules, or a single operator application
//   - Operation: an explicit (operator, arguments) pair produced by Classify
//   - Error types: structured errors with codes
//
// Values flowing through GoLogic use the encoding/json model: nil, bool,
// float64, string, []any and map[string]any. Arithmetic normalization may
// additionally produce int values (floats with an integral value collapse
// to int), so consumers should treat int and float64 uniformly.
package types

// Kind classifies a JSON value for evaluation purposes.
type Kind int

const (
	// KindLiteral is any value returned unevaluated: primitives, empty
	// maps and maps with two or more keys.
	KindLiteral Kind = iota
	// KindArray is an ordered sequence of independent rules.
	KindArray
	// KindOperation is a single-key map: the key names an operator, the
	// value is its argument list.
	KindOperation
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindOperation:
		return "operation"
	default:
		return "literal"
	}
}

// Operation is the parsed form of an operator-application rule.
// Args always holds the normalized argument list: a non-array argument
// value is wrapped into a one-element list ("unary sugar"), so
// {"var": "x"} and {"var": ["x"]} produce the same Operation.
type Operation struct {
	Operator string
	Args     []any
}

// Classify returns the evaluation classification of a JSON value.
// For KindOperation the returned Operation carries the operator name and
// the normalized argument list; for the other kinds it is nil.
//
// Classification is definitional, not heuristic: a map with exactly one
// key is an operation regardless of the key's content.
func Classify(v any) (Kind, *Operation) {
	switch val := v.(type) {
	case []any:
		return KindArray, nil
	case map[string]any:
		if len(val) != 1 {
			return KindLiteral, nil
		}
		for name, raw := range val {
			args, ok := raw.([]any)
			if !ok {
				args = []any{raw}
			}
			return KindOperation, &Operation{Operator: name, Args: args}
		}
	}
	return KindLiteral, nil
}

// IsRule reports whether v is an operator-application rule, i.e. a map
// with exactly one key. Arrays of rules are not rules themselves.
func IsRule(v any) bool {
	k, _ := Classify(v)
	return k == KindOperation
}
