// Package evaluator implements the GoLogic rule evaluation engine.
//
// The evaluator takes a JSON value interpreted as a rule and evaluates it
// against a data context. Dispatch follows the operator category order
// logical, scoped, data-access, custom, common, deprecated; the first
// three categories receive their raw arguments and manage recursion
// themselves, everything else is evaluated depth-first.
//
// # Example
//
//	ev := evaluator.New()
//	result, err := ev.Apply(ctx, map[string]any{"var": "user.name"}, data)
//
// # Concurrency
//
// An Evaluator is safe for concurrent use as long as its registry is not
// mutated while evaluations are in flight; registration and removal of
// operators are configuration operations that require external
// synchronization.
package evaluator

import (
	"context"
	"log/slog"

	"github.com/sandrolain/gologic/pkg/registry"
	"github.com/sandrolain/gologic/pkg/types"
)

// Evaluator evaluates JsonLogic rules against data.
type Evaluator struct {
	opts     Options
	logger   *slog.Logger
	registry *registry.Registry
}

// Options configures evaluator behavior.
type Options struct {
	// MaxDepth limits rule nesting depth. Zero disables the guard.
	MaxDepth int
	// Debug enables per-operation debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// Registry resolves custom, common and deprecated operators. When nil
	// a fresh registry with the built-in tables is created.
	Registry *registry.Registry
}

// Option configures an Evaluator.
type Option func(*Options)

// WithMaxDepth limits rule nesting depth.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithDebug enables debug logging of every dispatched operation.
func WithDebug(enabled bool) Option {
	return func(o *Options) {
		o.Debug = enabled
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithRegistry supplies the operator registry. Sharing one registry
// between evaluators shares its custom operator table.
func WithRegistry(r *registry.Registry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

// New creates a new Evaluator with default options.
func New(opts ...Option) *Evaluator {
	options := Options{
		MaxDepth: 10000,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Registry == nil {
		options.Registry = registry.New(registry.WithLogger(options.Logger))
	}
	return &Evaluator{
		opts:     options,
		logger:   options.Logger,
		registry: options.Registry,
	}
}

// Registry returns the evaluator's operator registry.
func (e *Evaluator) Registry() *registry.Registry {
	return e.registry
}

// Apply evaluates a rule against data and returns the resulting value.
// A nil data context defaults to an empty object. The only evaluation
// failure surfaced as an error is an unrecognized operator
// (types.ErrUnrecognizedOperation); every other edge case degrades to a
// sentinel value per the fail-soft policy.
func (e *Evaluator) Apply(ctx context.Context, rule any, data any) (any, error) {
	if data == nil {
		data = map[string]any{}
	}
	return e.apply(ctx, rule, data, 0)
}

// depthExceeded is returned when rule nesting exceeds MaxDepth. It uses
// the unrecognized-operation code so callers still see a single failure
// kind at the public boundary.
func (e *Evaluator) depthExceeded() error {
	return types.NewError(types.ErrUnrecognizedOperation, "maximum rule nesting depth exceeded")
}
