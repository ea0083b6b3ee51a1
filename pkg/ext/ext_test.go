package ext

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namespace struct {
	entries map[string]any
}

func (n namespace) ResolveSegment(name string) (any, error) {
	v, ok := n.entries[name]
	if !ok {
		return nil, errors.New("no such entry")
	}
	return v, nil
}

type adder struct{}

func (adder) Invoke(_ context.Context, args ...any) (any, error) {
	sum := 0.0
	for _, a := range args {
		f, _ := a.(float64)
		sum += f
	}
	return sum, nil
}

type counter struct {
	Total int
}

func (c *counter) Bump() int {
	c.Total++
	return c.Total
}

func TestResolve(t *testing.T) {
	t.Run("map lookup", func(t *testing.T) {
		root := map[string]any{"a": map[string]any{"b": 42}}
		v, err := Resolve(root, []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("map lookup missing key", func(t *testing.T) {
		_, err := Resolve(map[string]any{}, []string{"a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"a"`)
	})

	t.Run("path resolver interface", func(t *testing.T) {
		root := namespace{entries: map[string]any{"x": 1}}
		v, err := Resolve(root, []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		_, err = Resolve(root, []string{"y"})
		assert.Error(t, err)
	})

	t.Run("struct field", func(t *testing.T) {
		v, err := Resolve(&counter{Total: 3}, []string{"Total"})
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("method by name", func(t *testing.T) {
		v, err := Resolve(&counter{}, []string{"Bump"})
		require.NoError(t, err)
		assert.True(t, IsInvocable(v))
	})

	t.Run("null root", func(t *testing.T) {
		_, err := Resolve(nil, []string{"a"})
		assert.Error(t, err)
	})

	t.Run("empty path is identity", func(t *testing.T) {
		v, err := Resolve("root", nil)
		require.NoError(t, err)
		assert.Equal(t, "root", v)
	})
}

func TestCall(t *testing.T) {
	ctx := context.Background()

	t.Run("invocable interface", func(t *testing.T) {
		v, err := Call(ctx, adder{}, 1.0, 2.0)
		require.NoError(t, err)
		assert.Equal(t, 3.0, v)
	})

	t.Run("func type", func(t *testing.T) {
		fn := Func(func(_ context.Context, args ...any) (any, error) {
			return len(args), nil
		})
		v, err := Call(ctx, fn, "a", "b")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("reflected plain func", func(t *testing.T) {
		v, err := Call(ctx, strings.ToUpper, "abc")
		require.NoError(t, err)
		assert.Equal(t, "ABC", v)
	})

	t.Run("reflected func with context", func(t *testing.T) {
		fn := func(ctx context.Context, s string) string {
			return s + "!"
		}
		v, err := Call(ctx, fn, "hey")
		require.NoError(t, err)
		assert.Equal(t, "hey!", v)
	})

	t.Run("reflected variadic func", func(t *testing.T) {
		fn := func(sep string, parts ...string) string {
			return strings.Join(parts, sep)
		}
		v, err := Call(ctx, fn, "-", "a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, "a-b-c", v)
	})

	t.Run("numeric conversion", func(t *testing.T) {
		fn := func(n int) int {
			return n * 2
		}
		v, err := Call(ctx, fn, 21.0)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("value and error results", func(t *testing.T) {
		boom := errors.New("boom")
		fn := func() (string, error) {
			return "", boom
		}
		_, err := Call(ctx, fn)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("error only result", func(t *testing.T) {
		fn := func() error {
			return nil
		}
		v, err := Call(ctx, fn)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		fn := func(a, b string) string {
			return a + b
		}
		_, err := Call(ctx, fn, "only one")
		assert.Error(t, err)
	})

	t.Run("incompatible argument", func(t *testing.T) {
		fn := func(s string) string {
			return s
		}
		_, err := Call(ctx, fn, []any{})
		assert.Error(t, err)
	})

	t.Run("nil argument for nilable parameter", func(t *testing.T) {
		fn := func(v any) bool {
			return v == nil
		}
		v, err := Call(ctx, fn, nil)
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("non func value", func(t *testing.T) {
		_, err := Call(ctx, 42)
		assert.Error(t, err)
	})
}

func TestIsInvocable(t *testing.T) {
	assert.True(t, IsInvocable(adder{}))
	assert.True(t, IsInvocable(strings.ToUpper))
	assert.True(t, IsInvocable(Func(func(_ context.Context, _ ...any) (any, error) { return nil, nil })))
	assert.False(t, IsInvocable(42))
	assert.False(t, IsInvocable(nil))
	assert.False(t, IsInvocable(map[string]any{}))
}
