package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gologic/pkg/types"
)

func TestLookupCategories(t *testing.T) {
	r := New()

	_, category, ok := r.Lookup("==")
	require.True(t, ok)
	assert.Equal(t, CategoryCommon, category)

	_, category, ok = r.Lookup("count")
	require.True(t, ok)
	assert.Equal(t, CategoryDeprecated, category)

	_, _, ok = r.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestProtectedNamesNotInLookup(t *testing.T) {
	r := New()

	for _, name := range protectedNames {
		assert.True(t, r.IsProtected(name), name)
		assert.True(t, r.Known(name), name)
		_, _, ok := r.Lookup(name)
		assert.False(t, ok, "%s dispatches from the evaluator, not the registry", name)
	}
}

func TestRegisterAndRemove(t *testing.T) {
	r := New()

	err := r.Register("triple", func(_ context.Context, args ...any) (any, error) {
		return nil, nil
	})
	require.NoError(t, err)

	_, category, ok := r.Lookup("triple")
	require.True(t, ok)
	assert.Equal(t, CategoryCustom, category)

	require.NoError(t, r.Remove("triple"))
	_, _, ok = r.Lookup("triple")
	assert.False(t, ok)
}

func TestRegisterRejectsProtectedNames(t *testing.T) {
	r := New()

	err := r.Register("var", func(_ context.Context, args ...any) (any, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, &types.Error{Code: types.ErrProtectedOperation}))

	// A dotted name cannot smuggle in a protected root segment either.
	err = r.RegisterValue("if.then", struct{}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, &types.Error{Code: types.ErrProtectedOperation}))
}

func TestRegisterShadowsCommonBuiltin(t *testing.T) {
	r := New()
	ctx := context.Background()

	err := r.Register("+", func(_ context.Context, args ...any) (any, error) {
		return "shadowed", nil
	})
	require.NoError(t, err)

	entry, category, ok := r.Lookup("+")
	require.True(t, ok)
	assert.Equal(t, CategoryCustom, category)
	result, err := entry.Fn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shadowed", result)

	// Removing the custom entry restores the builtin.
	require.NoError(t, r.Remove("+"))
	entry, category, ok = r.Lookup("+")
	require.True(t, ok)
	assert.Equal(t, CategoryCommon, category)
	result, err = entry.Fn(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, result)
}

func TestRemoveUnknown(t *testing.T) {
	r := New()

	err := r.Remove("never_registered")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &types.Error{Code: types.ErrUnknownOperation}))

	// Builtins are not removable; only custom entries are.
	err = r.Remove("==")
	require.Error(t, err)
}

func TestRegisterValue(t *testing.T) {
	r := New()

	require.NoError(t, r.RegisterValue("strings", map[string]any{"sep": ","}))

	entry, category, ok := r.Lookup("strings")
	require.True(t, ok)
	assert.Equal(t, CategoryCustom, category)
	assert.Nil(t, entry.Fn)
	assert.NotNil(t, entry.Value)
}

func TestNames(t *testing.T) {
	r := New()
	names := r.Names()

	assert.Contains(t, names, "var")
	assert.Contains(t, names, "==")
	assert.Contains(t, names, "count")
	assert.IsIncreasing(t, names)

	before := len(names)
	require.NoError(t, r.Register("custom_op", func(_ context.Context, args ...any) (any, error) {
		return nil, nil
	}))
	assert.Len(t, r.Names(), before+1)

	// Shadowing an existing builtin must not duplicate the name.
	require.NoError(t, r.Register("+", func(_ context.Context, args ...any) (any, error) {
		return nil, nil
	}))
	assert.Len(t, r.Names(), before+1)
}
