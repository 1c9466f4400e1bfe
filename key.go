package alloy

import (
	"fmt"
	"reflect"
)

// Key provides type-safe class identification.
// Use KeyFor to create typed keys for your classes.
type Key[T any] struct {
	t reflect.Type
}

// KeyFor creates a new typed class key.
// The type parameter T fixes both the registry slot and the Go type callers
// receive, so a key declared once keeps registration and resolution aligned.
//
// Example:
//
//	var DatabaseKey = KeyFor[*Database]()
//	var ClockKey = KeyFor[Clock]()
func KeyFor[T any]() Key[T] {
	return Key[T]{t: TypeOf[T]()}
}

// Type returns the reflect.Type the key addresses.
func (k Key[T]) Type() reflect.Type {
	return k.t
}

// Name returns the display name of the keyed type.
func (k Key[T]) Name() string {
	return typeName(k.t)
}

// GetKey resolves a class using a typed key.
//
// Example:
//
//	db, err := GetKey(c, DatabaseKey)
func GetKey[T any](c Alloy, key Key[T]) (T, error) {
	var zero T

	instance, err := c.Get(key.t)
	if err != nil {
		return zero, err
	}

	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: resolved instance %T is not of type %s", ErrTypeMismatchSentinel, instance, typeName(key.t))
	}

	return result, nil
}

// MustKey resolves a class using a typed key and panics on error.
//
// Example:
//
//	db := MustKey(c, DatabaseKey)
func MustKey[T any](c Alloy, key Key[T]) T {
	result, err := GetKey(c, key)
	if err != nil {
		panic(err)
	}

	return result
}

// SetKey binds an instance using a typed key, overwriting any existing
// binding. The key's type parameter keeps the instance and the slot aligned.
func SetKey[T any](c Alloy, key Key[T], instance T) {
	c.Set(key.t, instance)
}

// HasKey checks if a class is known using a typed key.
func HasKey[T any](c Alloy, key Key[T]) bool {
	return c.Has(key.t)
}

// InspectKey returns diagnostic information about a class using a typed key.
func InspectKey[T any](c Alloy, key Key[T]) TypeInfo {
	return c.Inspect(key.t)
}
