package evaluator

import (
	"context"

	"github.com/sandrolain/gologic/pkg/coerce"
)

// scopedFunc receives raw arguments: the first is evaluated against the
// outer data to obtain the candidate sequence, the second is evaluated
// once per element with a fresh element-scoped data context.
type scopedFunc func(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error)

// Populated in init for the same reason as logicalOperations.
var scopedOperations map[string]scopedFunc

func init() {
	scopedOperations = map[string]scopedFunc{
		"filter": scopedFilter,
		"map":    scopedMap,
		"reduce": scopedReduce,
		"all":    scopedAll,
		"none":   scopedNone,
		"some":   scopedSome,
	}
}

// scopedSequence evaluates the scoped-data argument against the outer
// data. ok is false when the result is not a sequence; each operator has
// its own not-a-sequence fallback.
func (e *Evaluator) scopedSequence(ctx context.Context, raw any, data any, depth int) ([]any, bool, error) {
	value, err := e.apply(ctx, raw, data, depth+1)
	if err != nil {
		return nil, false, err
	}
	seq, ok := value.([]any)
	return seq, ok, nil
}

func scopedArg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// scopedFilter keeps elements whose scoped logic evaluates truthy, in
// original order. Not-a-sequence input yields an empty array.
func scopedFilter(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	seq, ok, err := e.scopedSequence(ctx, scopedArg(args, 0), data, depth)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []any{}, nil
	}
	logic := scopedArg(args, 1)
	kept := []any{}
	for _, item := range seq {
		verdict, err := e.apply(ctx, logic, item, depth+1)
		if err != nil {
			return nil, err
		}
		if coerce.Truthy(verdict) {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

// scopedMap collects the scoped logic's result for every element, in
// order. Not-a-sequence input yields an empty array.
func scopedMap(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	seq, ok, err := e.scopedSequence(ctx, scopedArg(args, 0), data, depth)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []any{}, nil
	}
	logic := scopedArg(args, 1)
	results := make([]any, len(seq))
	for i, item := range seq {
		value, err := e.apply(ctx, logic, item, depth+1)
		if err != nil {
			return nil, err
		}
		results[i] = value
	}
	return results, nil
}

// scopedReduce folds left-to-right seeded by the initial argument. The
// scoped logic sees a two-key context {"accumulator", "current"}.
// Not-a-sequence input returns the initial value.
func scopedReduce(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	initial := scopedArg(args, 2)
	seq, ok, err := e.scopedSequence(ctx, scopedArg(args, 0), data, depth)
	if err != nil {
		return nil, err
	}
	if !ok {
		return initial, nil
	}
	logic := scopedArg(args, 1)
	accumulator := initial
	for _, item := range seq {
		scope := map[string]any{
			"accumulator": accumulator,
			"current":     item,
		}
		accumulator, err = e.apply(ctx, logic, scope, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return accumulator, nil
}

// scopedAll is true when the scoped logic is truthy for every element.
// It short-circuits on the first falsy element. Not-a-sequence input and
// the empty sequence are false.
func scopedAll(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	seq, ok, err := e.scopedSequence(ctx, scopedArg(args, 0), data, depth)
	if err != nil {
		return nil, err
	}
	if !ok || len(seq) == 0 {
		return false, nil
	}
	logic := scopedArg(args, 1)
	for _, item := range seq {
		verdict, err := e.apply(ctx, logic, item, depth+1)
		if err != nil {
			return nil, err
		}
		if coerce.Falsy(verdict) {
			return false, nil
		}
	}
	return true, nil
}

// scopedNone is true when the scoped logic is falsy for every element.
// Unlike all, it evaluates every element before concluding; the full scan
// is observable through side-effecting operators and is kept for
// compatibility with other JsonLogic ports. Not-a-sequence input filters
// to an empty array and is therefore true.
func scopedNone(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	kept, err := scopedFilter(e, ctx, args, data, depth)
	if err != nil {
		return nil, err
	}
	return len(kept.([]any)) == 0, nil
}

// scopedSome is true when the scoped logic is truthy for at least one
// element. Like none it evaluates every element before concluding.
// Not-a-sequence input is false.
func scopedSome(e *Evaluator, ctx context.Context, args []any, data any, depth int) (any, error) {
	kept, err := scopedFilter(e, ctx, args, data, depth)
	if err != nil {
		return nil, err
	}
	return len(kept.([]any)) > 0, nil
}
