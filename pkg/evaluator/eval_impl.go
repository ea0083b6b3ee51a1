package evaluator

import (
	"context"
	"strings"

	"github.com/sandrolain/gologic/pkg/ext"
	"github.com/sandrolain/gologic/pkg/registry"
	"github.com/sandrolain/gologic/pkg/types"
)

// apply is the recursive evaluation core.
func (e *Evaluator) apply(ctx context.Context, rule any, data any, depth int) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if e.opts.MaxDepth > 0 && depth > e.opts.MaxDepth {
		return nil, e.depthExceeded()
	}

	kind, op := types.Classify(rule)
	switch kind {
	case types.KindArray:
		// Each element evaluates independently against the same data.
		items := rule.([]any)
		results := make([]any, len(items))
		for i, item := range items {
			result, err := e.apply(ctx, item, data, depth+1)
			if err != nil {
				return nil, err
			}
			results[i] = result
		}
		return results, nil

	case types.KindOperation:
		return e.applyOperation(ctx, op, data, depth)

	default:
		// Literals pass through unevaluated.
		return rule, nil
	}
}

func (e *Evaluator) applyOperation(ctx context.Context, op *types.Operation, data any, depth int) (any, error) {
	if e.opts.Debug {
		e.logger.DebugContext(ctx, "applying operation",
			"operator", op.Operator,
			"args", len(op.Args),
			"depth", depth)
	}

	// Logical and scoped operators receive raw arguments and manage
	// recursion themselves; this is the one deliberate deviation from
	// depth-first evaluation.
	if fn, ok := logicalOperations[op.Operator]; ok {
		return fn(e, ctx, op.Args, data, depth)
	}
	if fn, ok := scopedOperations[op.Operator]; ok {
		return fn(e, ctx, op.Args, data, depth)
	}

	// Everything else evaluates its arguments depth-first.
	args := make([]any, len(op.Args))
	for i, raw := range op.Args {
		value, err := e.apply(ctx, raw, data, depth+1)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	// Data-access operators run against the outer data context.
	if fn, ok := dataOperations[op.Operator]; ok {
		return fn(e, ctx, args, data)
	}

	if entry, category, ok := e.registry.Lookup(op.Operator); ok {
		if category == registry.CategoryDeprecated {
			e.logger.WarnContext(ctx, "operation is not officially supported by JsonLogic and is not guaranteed to work in other ports",
				"operator", op.Operator)
		}
		return e.callEntry(ctx, entry, op.Operator, args)
	}

	if strings.ContainsRune(op.Operator, '.') {
		return e.applyDotted(ctx, op.Operator, args)
	}

	return nil, types.NewUnrecognizedOperation(op.Operator)
}

// callEntry invokes a resolved registry entry with evaluated arguments.
func (e *Evaluator) callEntry(ctx context.Context, entry registry.Entry, name string, args []any) (any, error) {
	if entry.Fn != nil {
		return entry.Fn(ctx, args...)
	}
	if !ext.IsInvocable(entry.Value) {
		return nil, types.NewError(types.ErrNotInvocable,
			"operation "+name+" is not invocable").WithOperation(name)
	}
	return ext.Call(ctx, entry.Value, args...)
}

// applyDotted resolves a namespaced operator such as
// {"datetime.date": [...]}: the first segment must be a registered custom
// value, the remaining segments resolve through pkg/ext. A failed segment
// raises the unrecognized-operation error naming the path prefix that
// could not be resolved.
func (e *Evaluator) applyDotted(ctx context.Context, name string, args []any) (any, error) {
	segments := strings.Split(name, ".")

	entry, category, ok := e.registry.Lookup(segments[0])
	if !ok || category != registry.CategoryCustom {
		return nil, types.NewUnrecognizedOperation(name)
	}

	current := entry.Value
	if entry.Fn != nil {
		current = entry.Fn
	}
	for i, segment := range segments[1:] {
		next, err := ext.Resolve(current, []string{segment})
		if err != nil {
			prefix := strings.Join(segments[:i+2], ".")
			return nil, types.NewUnrecognizedOperation(prefix).WithCause(err)
		}
		current = next
	}

	if !ext.IsInvocable(current) {
		return nil, types.NewError(types.ErrNotInvocable,
			"operation "+name+" resolved to a non-invocable value").WithOperation(name)
	}
	return ext.Call(ctx, current, args...)
}
