package evaluator

import (
	"context"
	"strconv"
	"strings"

	"github.com/sandrolain/gologic/pkg/coerce"
)

// dataFunc receives already-evaluated arguments plus the outer data
// context the operator resolves against.
type dataFunc func(e *Evaluator, ctx context.Context, args []any, data any) (any, error)

var dataOperations = map[string]dataFunc{
	"var":          dataVar,
	"missing":      dataMissing,
	"missing_some": dataMissingSome,
}

// dataVar resolves a dotted variable path against the data context:
// {"var": ["user.name", default?]}. A null or empty-string name returns
// the entire data context.
func dataVar(e *Evaluator, _ context.Context, args []any, data any) (any, error) {
	name := argAt(args, 0)
	if name == nil || name == "" {
		return data, nil
	}
	return resolvePath(data, coerce.Stringify(name), argAt(args, 1)), nil
}

// resolvePath traverses data along the dot-separated path. Map containers
// index by key; sequences require the segment to parse as an in-range
// integer. Any lookup failure aborts the traversal and returns fallback.
func resolvePath(data any, path string, fallback any) any {
	current := data
	for _, segment := range strings.Split(path, ".") {
		switch container := current.(type) {
		case map[string]any:
			value, ok := container[segment]
			if !ok {
				return fallback
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return fallback
			}
			if index < 0 {
				// Negative segments index from the end.
				index += len(container)
			}
			if index < 0 || index >= len(container) {
				return fallback
			}
			current = container[index]
		default:
			return fallback
		}
	}
	return current
}

// isMissing is the shared missing predicate: a variable is missing when
// its resolution yields null or the empty string.
func isMissing(data any, name any) bool {
	value := data // var(null) resolves to the whole data context
	if name != nil && name != "" {
		value = resolvePath(data, coerce.Stringify(name), nil)
	}
	return value == nil || value == ""
}

// dataMissing returns the names that are missing from the data context,
// preserving duplicates and original order. It accepts either multiple
// scalar name arguments or a single array argument of names.
func dataMissing(e *Evaluator, _ context.Context, args []any, data any) (any, error) {
	names := args
	if len(args) > 0 {
		if list, ok := args[0].([]any); ok {
			names = list
		}
	}
	return missingNames(data, names), nil
}

func missingNames(data any, names []any) []any {
	missing := []any{}
	for _, name := range names {
		if isMissing(data, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// dataMissingSome returns an empty array when at least min_required of
// the names resolve to a present value, otherwise the full missing
// subset: {"missing_some": [min_required, names]}.
func dataMissingSome(e *Evaluator, _ context.Context, args []any, data any) (any, error) {
	required := 0
	if f, ok := coerce.ToFloat(argAt(args, 0)); ok {
		required = int(f)
	}
	names, ok := argAt(args, 1).([]any)
	if !ok {
		if n := argAt(args, 1); n != nil {
			names = []any{n}
		}
	}
	missing := missingNames(data, names)
	if len(names)-len(missing) >= required {
		return []any{}, nil
	}
	return missing, nil
}

func argAt(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}
