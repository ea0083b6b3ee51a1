package meta

import (
	"github.com/sandrolain/gologic/pkg/coerce"
	"github.com/sandrolain/gologic/pkg/types"
)

// Vars walks a rule without evaluating it and collects every literal
// variable path referenced through the var operator, in first-seen order
// without duplicates.
//
// A var whose path argument is itself a rule is skipped: resolving it
// would require evaluation, which this helper deliberately avoids.
func Vars(rule any) []string {
	collected := []string{}
	seen := map[string]struct{}{}

	var walk func(v any)
	walk = func(v any) {
		kind, op := types.Classify(v)
		switch kind {
		case types.KindArray:
			for _, item := range v.([]any) {
				walk(item)
			}
		case types.KindOperation:
			if op.Operator == "var" {
				if len(op.Args) == 0 {
					return
				}
				name := op.Args[0]
				if name == nil || types.IsRule(name) {
					return
				}
				switch name.(type) {
				case string, float64, int:
					path := coerce.Stringify(name)
					if _, ok := seen[path]; !ok {
						seen[path] = struct{}{}
						collected = append(collected, path)
					}
				}
				return
			}
			for _, arg := range op.Args {
				walk(arg)
			}
		}
	}
	walk(rule)
	return collected
}
