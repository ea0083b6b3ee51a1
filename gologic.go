// Package gologic provides a Go implementation of the JsonLogic rule
// language.
//
// A rule is a plain JSON value: primitives and multi-key objects are
// literals, arrays evaluate element-wise, and a single-key object applies
// the operator named by its key to the positional arguments in its value.
// Rules evaluate against a caller-supplied data context and produce a
// JSON value.
//
// # Quick Start
//
//	// {"var": "user.name"} against {"user": {"name": "Alice"}}
//	result, err := gologic.Apply(
//	    map[string]any{"var": "user.name"},
//	    map[string]any{"user": map[string]any{"name": "Alice"}},
//	)
//	// result == "Alice"
//
// # Custom operators
//
//	_ = gologic.AddOperation("double", func(ctx context.Context, args ...any) (any, error) {
//	    f, _ := coerce.ToFloat(args[0])
//	    return f * 2, nil
//	})
//	result, _ := gologic.Apply(map[string]any{"double": 21}, nil)
//	// result == 42.0
//
// Package-level functions work on a process-wide default evaluator and
// registry, mirroring the reference implementations' module-level
// operation table. Construct your own [evaluator.Evaluator] with
// [registry.Registry] when you need isolated operator sets; mutating a
// registry concurrently with evaluation requires external
// synchronization.
//
// # Errors
//
// The only evaluation failure surfaced as an error is an unrecognized
// operator name. Everything else (wrong arity, type mismatches, absent
// data) degrades to a defined sentinel value: null, false or an empty
// array depending on the operator.
//
// # More Information
//
// For detailed documentation, see:
//   - Evaluator: github.com/sandrolain/gologic/pkg/evaluator
//   - Registry: github.com/sandrolain/gologic/pkg/registry
//   - Coercion: github.com/sandrolain/gologic/pkg/coerce
//   - Introspection: github.com/sandrolain/gologic/pkg/meta
package gologic

import (
	"context"

	"github.com/sandrolain/gologic/pkg/evaluator"
	"github.com/sandrolain/gologic/pkg/meta"
	"github.com/sandrolain/gologic/pkg/registry"
	"github.com/sandrolain/gologic/pkg/types"
)

// Version returns the current version of GoLogic.
func Version() string {
	return "v0.1.0-dev"
}

// defaultEvaluator backs the package-level functions. Its registry is the
// process-wide operator table mutated by AddOperation and RemoveOperation.
var defaultEvaluator = evaluator.New()

// Apply evaluates a rule against data using the default evaluator.
// data may be nil, which evaluates against an empty object.
func Apply(rule any, data any) (any, error) {
	return defaultEvaluator.Apply(context.Background(), rule, data)
}

// ApplyWithContext evaluates a rule with a caller-supplied context, which
// flows to custom operators and cancels long evaluations.
func ApplyWithContext(ctx context.Context, rule any, data any) (any, error) {
	return defaultEvaluator.Apply(ctx, rule, data)
}

// IsRule reports whether v is an operator-application rule: a map with
// exactly one key.
func IsRule(v any) bool {
	return types.IsRule(v)
}

// Vars returns the variable paths a rule references, in first-seen order
// without duplicates, without evaluating the rule.
func Vars(rule any) []string {
	return meta.Vars(rule)
}

// RuleLike reports whether rule structurally matches pattern; see
// [meta.Like] for the wildcard tokens.
func RuleLike(rule, pattern any) bool {
	return meta.Like(rule, pattern)
}

// AddOperation registers a custom operator on the default registry. A
// name matching a common built-in shadows it until removed; names owned
// by the logical, scoped and data-access categories are rejected.
func AddOperation(name string, fn registry.OperationFunc) error {
	return defaultEvaluator.Registry().Register(name, fn)
}

// AddOperationValue registers a host value as an operator namespace on
// the default registry, enabling dotted operator names such as
// {"mathx.Clamp": [...]}.
func AddOperationValue(name string, v any) error {
	return defaultEvaluator.Registry().RegisterValue(name, v)
}

// RemoveOperation removes a custom operator from the default registry,
// restoring any shadowed built-in.
func RemoveOperation(name string) error {
	return defaultEvaluator.Registry().Remove(name)
}

// Operations returns every operator name known to the default registry,
// sorted.
func Operations() []string {
	return defaultEvaluator.Registry().Names()
}
