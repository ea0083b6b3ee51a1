// Package ext provides the optional host-value extension mechanism for
// GoLogic: dotted-path resolution over registered Go values and reflective
// invocation of the resolved target.
//
// It backs two features that go beyond the core evaluator contract:
//   - namespaced custom operators such as {"strings.ToUpper": ["abc"]},
//     registered with [registry.Registry.RegisterValue]
//   - the "method" common operator, which reads a property or invokes a
//     method on an evaluated value
//
// Host values can implement [PathResolver] and [Invocable] to control
// resolution and invocation explicitly; plain maps, structs, funcs and
// bound methods are handled through reflection.
package ext

import (
	"context"
	"fmt"
	"reflect"
)

// PathResolver lets a host value control how its path segments resolve.
// Registered namespace values implementing this interface bypass the
// reflection fallback entirely.
type PathResolver interface {
	ResolveSegment(name string) (any, error)
}

// Invocable lets a resolved value control its own invocation.
type Invocable interface {
	Invoke(ctx context.Context, args ...any) (any, error)
}

// Func is the plain function shape accepted by Call without reflection.
type Func func(ctx context.Context, args ...any) (any, error)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Resolve walks the dotted-path segments starting from root. Each segment
// resolves through, in order: the PathResolver interface, string-keyed map
// lookup, exported method lookup, exported struct field lookup. The error
// names the first segment that fails to resolve.
func Resolve(root any, segments []string) (any, error) {
	current := root
	for _, segment := range segments {
		next, err := resolveSegment(current, segment)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func resolveSegment(v any, name string) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot resolve %q on null", name)
	}

	if r, ok := v.(PathResolver); ok {
		return r.ResolveSegment(name)
	}

	if m, ok := v.(map[string]any); ok {
		value, ok := m[name]
		if !ok {
			return nil, fmt.Errorf("no entry %q", name)
		}
		return value, nil
	}

	rv := reflect.ValueOf(v)
	if method := rv.MethodByName(name); method.IsValid() {
		return method.Interface(), nil
	}

	elem := rv
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, fmt.Errorf("cannot resolve %q on nil pointer", name)
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		field := elem.FieldByName(name)
		if field.IsValid() && field.CanInterface() {
			return field.Interface(), nil
		}
	}

	return nil, fmt.Errorf("cannot resolve %q on %T", name, v)
}

// Call invokes a resolved value with the given arguments. Invocable values
// and Func values are called directly; any other func value is called
// through reflection, with a leading context.Context parameter supplied
// when the signature asks for one. Non-func values are not invocable.
func Call(ctx context.Context, v any, args ...any) (any, error) {
	switch fn := v.(type) {
	case Invocable:
		return fn.Invoke(ctx, args...)
	case Func:
		return fn(ctx, args...)
	case func(ctx context.Context, args ...any) (any, error):
		return fn(ctx, args...)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("%T is not invocable", v)
	}
	return callReflected(ctx, rv, args)
}

// IsInvocable reports whether Call can invoke v.
func IsInvocable(v any) bool {
	switch v.(type) {
	case Invocable, Func, func(ctx context.Context, args ...any) (any, error):
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

func callReflected(ctx context.Context, fn reflect.Value, args []any) (any, error) {
	ft := fn.Type()

	in := make([]reflect.Value, 0, ft.NumIn())
	offset := 0
	if ft.NumIn() > 0 && ft.In(0) == contextType {
		in = append(in, reflect.ValueOf(ctx))
		offset = 1
	}

	fixed := ft.NumIn() - offset
	if ft.IsVariadic() {
		if len(args) < fixed-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", fixed-1, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("expected %d arguments, got %d", fixed, len(args))
	}

	for i, arg := range args {
		var want reflect.Type
		if ft.IsVariadic() && i >= fixed-1 {
			want = ft.In(ft.NumIn() - 1).Elem()
		} else {
			want = ft.In(i + offset)
		}
		av, err := convertArg(arg, want)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, av)
	}

	out := fn.Call(in)
	return collectResults(out)
}

func convertArg(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot pass null as %s", want)
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(want) {
		return av, nil
	}
	if av.Type().ConvertibleTo(want) {
		// Numeric widening/narrowing, e.g. float64 JSON numbers into int params.
		return av.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, want)
}

func collectResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type().Implements(errorType) {
			if err, _ := out[0].Interface().(error); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return out[0].Interface(), nil
	case 2:
		var err error
		if e, ok := out[1].Interface().(error); ok {
			err = e
		}
		return out[0].Interface(), err
	default:
		return nil, fmt.Errorf("unsupported result arity %d", len(out))
	}
}
