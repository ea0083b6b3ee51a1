// Package registry implements the GoLogic operator registry.
//
// The registry partitions operator names into separate internal tables:
//
//   - protected: the logical (if, ?:, and, or), scoped (filter, map,
//     reduce, all, none, some) and data-access (var, missing,
//     missing_some) operator names. Their implementations live in the
//     evaluator because they control recursion; the registry only reserves
//     the names so they can never be shadowed.
//   - common: the built-in eager operators (comparisons, arithmetic,
//     string operations, log, in, merge, method).
//   - deprecated: operators kept for compatibility that are dispatched
//     last and logged as a warning (count).
//   - custom: user entries, looked up before common so a registration may
//     shadow a built-in; removing the entry restores the built-in.
//
// Lookups are safe to run concurrently with each other. Register and
// Remove are configuration operations: callers that mutate a registry
// while evaluations are in flight must synchronize externally.
package registry

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/sandrolain/gologic/pkg/types"
)

// OperationFunc is the signature shared by built-in and user operators in
// the eager categories. args contains the already-evaluated arguments in
// order.
type OperationFunc func(ctx context.Context, args ...any) (any, error)

// Category identifies the table a lookup resolved in.
type Category int

const (
	// CategoryCustom is a user-registered entry.
	CategoryCustom Category = iota
	// CategoryCommon is a built-in eager operator.
	CategoryCommon
	// CategoryDeprecated is a compatibility operator dispatched with a warning.
	CategoryDeprecated
)

func (c Category) String() string {
	switch c {
	case CategoryCustom:
		return "custom"
	case CategoryDeprecated:
		return "deprecated"
	default:
		return "common"
	}
}

// Entry is a registered operator. Exactly one of Fn and Value is set:
// Fn for callable operators, Value for host-value namespaces resolved
// through dotted operator names (pkg/ext).
type Entry struct {
	Name  string
	Fn    OperationFunc
	Value any
}

// protectedNames are the operator names owned by the logical, scoped and
// data-access categories. The evaluator's fixed dispatch tables use
// exactly this set.
var protectedNames = []string{
	"if", "?:", "and", "or",
	"filter", "map", "reduce", "all", "none", "some",
	"var", "missing", "missing_some",
}

// Registry maps operator names to implementations.
type Registry struct {
	logger     *slog.Logger
	protected  map[string]struct{}
	common     map[string]OperationFunc
	deprecated map[string]OperationFunc
	custom     map[string]Entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the structured logger used by the "log" operator and
// deprecation warnings. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Registry preloaded with the built-in operator tables.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:    slog.Default(),
		protected: make(map[string]struct{}, len(protectedNames)),
		custom:    make(map[string]Entry),
	}
	for _, name := range protectedNames {
		r.protected[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	r.common = commonOperations(r.logger)
	r.deprecated = deprecatedOperations()
	return r
}

// Register adds or replaces a custom operator. Registering a name that
// matches a common built-in shadows it until the entry is removed.
// Names reserved by the protected categories are rejected.
func (r *Registry) Register(name string, fn OperationFunc) error {
	if err := r.checkName(name); err != nil {
		return err
	}
	r.custom[name] = Entry{Name: name, Fn: fn}
	return nil
}

// RegisterValue adds a host-value namespace usable through dotted
// operator names, e.g. RegisterValue("strings", v) enables
// {"strings.ToUpper": [...]} rules. The value's path segments resolve via
// pkg/ext.
func (r *Registry) RegisterValue(name string, v any) error {
	if err := r.checkName(name); err != nil {
		return err
	}
	r.custom[name] = Entry{Name: name, Value: v}
	return nil
}

func (r *Registry) checkName(name string) error {
	root := name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		root = name[:i]
	}
	if _, ok := r.protected[root]; ok {
		return types.NewError(types.ErrProtectedOperation,
			"operation "+root+" is reserved and cannot be overridden").WithOperation(root)
	}
	return nil
}

// Remove deletes a custom operator. A shadowed common built-in becomes
// visible again. Removing a name that was never registered is an error.
func (r *Registry) Remove(name string) error {
	if _, ok := r.custom[name]; !ok {
		return types.NewError(types.ErrUnknownOperation,
			"operation "+name+" is not registered").WithOperation(name)
	}
	delete(r.custom, name)
	return nil
}

// Lookup resolves an operator name in category order custom, common,
// deprecated. Protected names are not resolved here; the evaluator
// dispatches them from its own tables before consulting the registry.
func (r *Registry) Lookup(name string) (Entry, Category, bool) {
	if e, ok := r.custom[name]; ok {
		return e, CategoryCustom, true
	}
	if fn, ok := r.common[name]; ok {
		return Entry{Name: name, Fn: fn}, CategoryCommon, true
	}
	if fn, ok := r.deprecated[name]; ok {
		return Entry{Name: name, Fn: fn}, CategoryDeprecated, true
	}
	return Entry{}, CategoryCommon, false
}

// IsProtected reports whether name is reserved by the logical, scoped or
// data-access categories.
func (r *Registry) IsProtected(name string) bool {
	_, ok := r.protected[name]
	return ok
}

// Known reports whether name resolves in any category, protected included.
func (r *Registry) Known(name string) bool {
	if r.IsProtected(name) {
		return true
	}
	_, _, ok := r.Lookup(name)
	return ok
}

// Names returns every known operator name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.protected)+len(r.common)+len(r.deprecated)+len(r.custom))
	for name := range r.protected {
		names = append(names, name)
	}
	for name := range r.common {
		names = append(names, name)
	}
	for name := range r.deprecated {
		names = append(names, name)
	}
	for name := range r.custom {
		if _, ok := r.common[name]; ok {
			continue // shadowing entry, already listed
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Logger returns the registry's structured logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}
