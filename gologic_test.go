package gologic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gologic/pkg/types"
)

func TestApply(t *testing.T) {
	result, err := Apply(
		map[string]any{"var": "user.name"},
		map[string]any{"user": map[string]any{"name": "Alice"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "Alice", result)
}

func TestApplyNilData(t *testing.T) {
	result, err := Apply(map[string]any{"+": []any{1.0, 2.0}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result)
}

func TestApplyUnrecognizedOperator(t *testing.T) {
	_, err := Apply(map[string]any{"fictional_operator": []any{}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &types.Error{Code: types.ErrUnrecognizedOperation}))
}

func TestApplyWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ApplyWithContext(ctx, map[string]any{"var": "a"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddAndRemoveOperation(t *testing.T) {
	err := AddOperation("double", func(_ context.Context, args ...any) (any, error) {
		f, _ := args[0].(float64)
		return f * 2, nil
	})
	require.NoError(t, err)
	defer func() { _ = RemoveOperation("double") }()

	result, err := Apply(map[string]any{"double": 21.0}, nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, result)

	require.NoError(t, RemoveOperation("double"))
	_, err = Apply(map[string]any{"double": 21.0}, nil)
	assert.Error(t, err)
}

func TestAddOperationRejectsProtected(t *testing.T) {
	err := AddOperation("if", func(_ context.Context, args ...any) (any, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, &types.Error{Code: types.ErrProtectedOperation}))
}

type mathx struct{}

func (mathx) Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func TestAddOperationValue(t *testing.T) {
	require.NoError(t, AddOperationValue("mathx", mathx{}))
	defer func() { _ = RemoveOperation("mathx") }()

	result, err := Apply(map[string]any{"mathx.Clamp": []any{15.0, 0.0, 10.0}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10.0, result)
}

func TestIsRule(t *testing.T) {
	assert.True(t, IsRule(map[string]any{"==": []any{1, 1}}))
	assert.False(t, IsRule([]any{1, 2}))
	assert.False(t, IsRule(nil))
}

func TestVars(t *testing.T) {
	rule := map[string]any{"+": []any{
		map[string]any{"var": "a"},
		map[string]any{"var": []any{"b", 2.0}},
	}}
	assert.Equal(t, []string{"a", "b"}, Vars(rule))
}

func TestRuleLike(t *testing.T) {
	rule := map[string]any{"+": []any{1.0, 2.0}}
	assert.True(t, RuleLike(rule, map[string]any{"+": []any{"number", "number"}}))
	assert.False(t, RuleLike(rule, map[string]any{"-": []any{"number", "number"}}))
}

func TestOperations(t *testing.T) {
	names := Operations()
	assert.Contains(t, names, "var")
	assert.Contains(t, names, "if")
	assert.Contains(t, names, "==")
	assert.Contains(t, names, "count")
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version())
}
