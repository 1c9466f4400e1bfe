package alloy

import (
	"fmt"
	"reflect"
)

// TypeOf returns the reflect.Type of T without allocating a value.
// It works for interface types as well as concrete ones.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Get resolves T with type safety.
func Get[T any](a Alloy) (T, error) {
	var zero T

	instance, err := a.Get(TypeOf[T]())
	if err != nil {
		return zero, err
	}

	if instance == nil {
		return zero, nil
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: resolved instance %T is not of type %T", ErrTypeMismatchSentinel, instance, zero)
	}

	return typed, nil
}

// MustGet resolves T or panics - use only during startup.
func MustGet[T any](a Alloy) T {
	instance, err := Get[T](a)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", typeName(TypeOf[T]()), err))
	}

	return instance
}

// TryGet resolves T, reporting presence instead of an error.
func TryGet[T any](a Alloy) (T, bool) {
	instance, err := Get[T](a)
	if err != nil {
		var zero T

		return zero, false
	}

	return instance, true
}

// GetOr resolves T, falling back to def when resolution fails.
func GetOr[T any](a Alloy, def T) T {
	instance, err := Get[T](a)
	if err != nil {
		return def
	}

	return instance
}

// Set binds instance under T, overwriting any existing binding. The binding
// is duck-typed: instance may be any value, and Get hands it back verbatim.
func Set[T any](a Alloy, instance any) {
	a.Set(TypeOf[T](), instance)
}

// Has checks whether T is bound or has a registered constructor.
func Has[T any](a Alloy) bool {
	return a.Has(TypeOf[T]())
}

// Inspect returns diagnostic information about T.
func Inspect[T any](a Alloy) TypeInfo {
	return a.Inspect(TypeOf[T]())
}
