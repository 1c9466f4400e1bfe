package alloy

import (
	"reflect"
)

// Alloy is a type-keyed dependency injection container. Each distinct type
// resolves to a single instance per container: on first demand the container
// recursively constructs the type and its dependencies, caches the result,
// and returns the same instance from then on. Instances bound with Set take
// precedence over construction and are returned verbatim.
type Alloy interface {
	// Get returns the instance for t, constructing and caching it on first use.
	Get(t reflect.Type) (any, error)

	// MustGet is Get, panicking on error.
	MustGet(t reflect.Type) any

	// Set unconditionally binds an instance to t, overwriting any cached one.
	// No validation is performed; the instance is returned verbatim by Get.
	Set(t reflect.Type, instance any)

	// Provide registers constructor functions of the form func(deps...) T or
	// func(deps...) (T, error). The declared result type becomes resolvable;
	// constructors run at most once, on first demand.
	Provide(constructors ...any) error

	// Has reports whether t is cached or has a constructor.
	Has(t reflect.Type) bool

	// Types returns all known types, sorted by name.
	Types() []reflect.Type

	// Inspect returns diagnostic information about t.
	Inspect(t reflect.Type) TypeInfo

	// Use adds middleware invoked around every Get.
	// Middleware is called in the order it was added.
	Use(mw Middleware)

	// Graph returns a snapshot of the dependency graph observed so far.
	Graph() *DependencyGraph

	// Clone returns an independent container seeded with this one's
	// instances and constructors.
	Clone() Alloy
}

// TypeInfo contains diagnostic information about a type known to the container.
type TypeInfo struct {
	// Type is the inspected type.
	Type reflect.Type

	// Name is the rendered type name.
	Name string

	// Cached reports whether an instance is currently bound.
	Cached bool

	// Provided reports whether a constructor is registered.
	Provided bool

	// Params lists the constructor parameters of auto-constructible types.
	Params []Param

	// DependsOn lists the class-reference dependency types.
	DependsOn []reflect.Type
}

// New creates a new container.
func New(opts ...Option) Alloy {
	return newContainer(opts...)
}
