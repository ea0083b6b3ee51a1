package evaluator

import (
	"context"

	"github.com/sandrolain/gologic/pkg/coerce"
)

// logicalFunc receives the raw, unevaluated argument list and controls
// recursion itself, which is what enables short-circuiting.
type logicalFunc func(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error)

// Populated in init: the operator bodies recurse through apply, which
// reads this map back, so a composite literal would be an
// initialization cycle.
var logicalOperations map[string]logicalFunc

func init() {
	logicalOperations = map[string]logicalFunc{
		"if":  logicalIf,
		"?:":  logicalTernary,
		"and": logicalAnd,
		"or":  logicalOr,
	}
}

// logicalIf scans arguments pairwise as (condition, consequence): the
// first truthy condition selects its consequence; an odd trailing
// argument is the else branch. Conditions past the first truthy one, and
// unselected consequences, are never evaluated.
func logicalIf(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	i := 0
	for ; i+1 < len(args); i += 2 {
		condition, err := e.apply(ctx, args[i], data, depth+1)
		if err != nil {
			return nil, err
		}
		if coerce.Truthy(condition) {
			return e.apply(ctx, args[i+1], data, depth+1)
		}
	}
	if len(args)%2 == 1 {
		return e.apply(ctx, args[len(args)-1], data, depth+1)
	}
	return nil, nil
}

// logicalTernary is the three-argument conditional: if (A) then B else C.
func logicalTernary(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	return logicalIf(e, ctx, args, data, depth)
}

// logicalAnd returns the first falsy evaluated argument, or the last
// evaluated value when all are truthy. Arguments after the first falsy
// one are never evaluated.
func logicalAnd(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	var current any = false
	for _, raw := range args {
		value, err := e.apply(ctx, raw, data, depth+1)
		if err != nil {
			return nil, err
		}
		current = value
		if coerce.Falsy(current) {
			return current, nil
		}
	}
	return current, nil
}

// logicalOr returns the first truthy evaluated argument, or the last
// evaluated value when none are.
func logicalOr(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	var current any = false
	for _, raw := range args {
		value, err := e.apply(ctx, raw, data, depth+1)
		if err != nil {
			return nil, err
		}
		current = value
		if coerce.Truthy(current) {
			return current, nil
		}
	}
	return current, nil
}
