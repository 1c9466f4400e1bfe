package alloy

import (
	"fmt"
	"sync"
)

// Lazy wraps a dependency that is resolved on first access.
// This is useful for breaking circular dependencies or deferring
// resolution of expensive classes until they're actually needed.
type Lazy[T any] struct {
	container Alloy
	mu        sync.Once
	value     T
	err       error
	resolved  bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](container Alloy) *Lazy[T] {
	return &Lazy[T]{
		container: container,
	}
}

// Get resolves the dependency and returns it.
// The resolution happens only once; subsequent calls return the cached value.
func (l *Lazy[T]) Get() (T, error) {
	l.mu.Do(func() {
		value, err := Get[T](l.container)
		if err != nil {
			l.err = err

			return
		}

		l.value = value
		l.resolved = true
	})

	return l.value, l.err
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", typeName(TypeOf[T]()), err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Name returns the name of the dependency type.
func (l *Lazy[T]) Name() string {
	return typeName(TypeOf[T]())
}

// OptionalLazy wraps an optional dependency that is resolved on first access.
// Returns the zero value without error if the dependency is not known.
type OptionalLazy[T any] struct {
	container Alloy
	mu        sync.Once
	value     T
	err       error
	resolved  bool
	found     bool
}

// NewOptionalLazy creates a new optional lazy dependency wrapper.
func NewOptionalLazy[T any](container Alloy) *OptionalLazy[T] {
	return &OptionalLazy[T]{
		container: container,
	}
}

// Get resolves the dependency and returns it.
// Returns the zero value without error if the dependency is not bound
// and cannot be auto-constructed.
func (l *OptionalLazy[T]) Get() (T, error) {
	l.mu.Do(func() {
		if !Has[T](l.container) {
			if _, err := analyzeClass(TypeOf[T]()); err != nil {
				l.resolved = true
				l.found = false

				return
			}
		}

		value, err := Get[T](l.container)
		if err != nil {
			l.err = err

			return
		}

		l.value = value
		l.resolved = true
		l.found = true
	})

	return l.value, l.err
}

// MustGet resolves the dependency and returns it, panicking on error.
// Returns the zero value if the dependency is not known (does not panic).
func (l *OptionalLazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("optional lazy dependency %s failed: %v", typeName(TypeOf[T]()), err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *OptionalLazy[T]) IsResolved() bool {
	return l.resolved
}

// IsFound returns true if the dependency was found (only valid after resolution).
func (l *OptionalLazy[T]) IsFound() bool {
	return l.found
}

// Name returns the name of the dependency type.
func (l *OptionalLazy[T]) Name() string {
	return typeName(TypeOf[T]())
}
