// Package meta provides static introspection over JsonLogic rules: an
// explicit operation tree with a pretty printer, collection of referenced
// variables, and structural pattern matching for rule linting.
//
// Nothing in this package evaluates rules; it only inspects their
// structure.
package meta

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandrolain/gologic/pkg/registry"
	"github.com/sandrolain/gologic/pkg/types"
)

// Operation is the introspectable tree form of an operator-application
// rule. Arguments hold primitives, []any values, and nested *Operation
// nodes.
type Operation struct {
	Operator  string
	Arguments []any
}

// FromRule parses a rule into an Operation tree, recursing through
// nested operator applications. Operators unknown to the registry are
// rejected, which makes the tree a validation pass as well.
func FromRule(rule any, reg *registry.Registry) (*Operation, error) {
	kind, op := types.Classify(rule)
	if kind != types.KindOperation {
		return nil, fmt.Errorf("value is not an operation (classified as %s)", kind)
	}
	if reg != nil && !reg.Known(op.Operator) && !strings.ContainsRune(op.Operator, '.') {
		return nil, types.NewUnrecognizedOperation(op.Operator)
	}

	arguments := make([]any, len(op.Args))
	for i, raw := range op.Args {
		arg, err := fromArgument(raw, reg)
		if err != nil {
			return nil, err
		}
		arguments[i] = arg
	}
	return &Operation{Operator: op.Operator, Arguments: arguments}, nil
}

func fromArgument(v any, reg *registry.Registry) (any, error) {
	if types.IsRule(v) {
		return FromRule(v, reg)
	}
	if items, ok := v.([]any); ok {
		converted := make([]any, len(items))
		for i, item := range items {
			arg, err := fromArgument(item, reg)
			if err != nil {
				return nil, err
			}
			converted[i] = arg
		}
		return converted, nil
	}
	return v, nil
}

// Rule converts the tree back to its JSON rule form.
func (o *Operation) Rule() any {
	args := make([]any, len(o.Arguments))
	for i, arg := range o.Arguments {
		args[i] = ruleArgument(arg)
	}
	return map[string]any{o.Operator: args}
}

func ruleArgument(v any) any {
	switch arg := v.(type) {
	case *Operation:
		return arg.Rule()
	case []any:
		items := make([]any, len(arg))
		for i, item := range arg {
			items[i] = ruleArgument(item)
		}
		return items
	default:
		return v
	}
}

// String renders the tree with box-drawing connectors:
//
//	Operation(+)
//	  ├─ 1
//	  └─ Operation(var)
//	  │    └─ "a"
func (o *Operation) String() string {
	lines := []string{fmt.Sprintf("Operation(%s)", o.Operator)}
	for i, arg := range o.Arguments {
		prefix := "  ├─"
		if i == len(o.Arguments)-1 {
			prefix = "  └─"
		}
		lines = append(lines, renderArgument(arg, prefix))
	}
	return strings.Join(lines, "\n")
}

func renderArgument(arg any, prefix string) string {
	repr := argumentRepr(arg)
	parts := strings.Split(repr, "\n")
	out := prefix + " " + parts[0]
	for _, rest := range parts[1:] {
		out += "\n  │  " + rest
	}
	return out
}

func argumentRepr(arg any) string {
	switch v := arg.(type) {
	case *Operation:
		return v.String()
	case []any:
		reprs := make([]string, len(v))
		for i, item := range v {
			reprs[i] = argumentRepr(item)
		}
		return "[" + strings.Join(reprs, ", ") + "]"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
