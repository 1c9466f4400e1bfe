package alloy

import (
	"context"
	"reflect"
)

// Middleware provides hooks for intercepting container operations.
// Middleware can be used for logging, metrics, security, testing, etc.
type Middleware interface {
	// BeforeResolve is called before resolving a type.
	// Return error to abort resolution.
	BeforeResolve(ctx context.Context, t reflect.Type) error

	// AfterResolve is called after resolving a type.
	// Called even if resolution failed (instance and err may both be set).
	AfterResolve(ctx context.Context, t reflect.Type, instance any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{
		middleware: make([]Middleware, 0),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	m.middleware = append(m.middleware, middleware)
}

// clone returns an independent chain with the same middleware.
func (m *middlewareChain) clone() *middlewareChain {
	out := newMiddlewareChain()
	out.middleware = append(out.middleware, m.middleware...)

	return out
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(ctx context.Context, t reflect.Type) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(ctx, t); err != nil {
			return err
		}
	}

	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(ctx context.Context, t reflect.Type, instance any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(ctx, t, instance, err); mwErr != nil {
			return mwErr
		}
	}

	return nil
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, t reflect.Type) error
	AfterResolveFunc  func(ctx context.Context, t reflect.Type, instance any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, t reflect.Type) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(ctx, t)
	}

	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, t reflect.Type, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(ctx, t, instance, err)
	}

	return nil
}
