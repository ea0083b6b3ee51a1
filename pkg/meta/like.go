package meta

import (
	"github.com/sandrolain/gologic/pkg/coerce"
	"github.com/sandrolain/gologic/pkg/types"
)

// Wildcard tokens understood by Like.
const (
	WildcardAny    = "@"
	WildcardNumber = "number"
	WildcardString = "string"
	WildcardArray  = "array"
)

// Like reports whether rule structurally matches pattern. A pattern can
// use the wildcard tokens "@" (anything), "number", "string" and "array"
// at any position, including as an operator name; operator applications
// recurse through their argument lists, arrays match pairwise with equal
// length. Anything else must match exactly.
func Like(rule, pattern any) bool {
	if coerce.HardEquals(pattern, rule) {
		return true
	}

	switch pattern {
	case WildcardAny:
		return true
	case WildcardNumber:
		return coerce.IsNumeric(rule)
	case WildcardString:
		_, ok := rule.(string)
		return ok
	case WildcardArray:
		_, ok := rule.([]any)
		return ok
	}

	if types.IsRule(pattern) {
		if !types.IsRule(rule) {
			return false
		}
		_, patternOp := types.Classify(pattern)
		_, ruleOp := types.Classify(rule)
		if patternOp.Operator != WildcardAny && patternOp.Operator != ruleOp.Operator {
			return false
		}
		return likeArgs(ruleOp.Args, patternOp.Args)
	}

	if patternItems, ok := pattern.([]any); ok {
		ruleItems, ok := rule.([]any)
		if !ok {
			return false
		}
		return likeArgs(ruleItems, patternItems)
	}

	return false
}

func likeArgs(rule, pattern []any) bool {
	if len(rule) != len(pattern) {
		return false
	}
	for i := range pattern {
		if !Like(rule[i], pattern[i]) {
			return false
		}
	}
	return true
}
