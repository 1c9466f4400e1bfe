package alloy

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	logger "github.com/xraph/go-utils/log"
)

// errorType is the reflect.Type of the error interface.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructorInfo describes a registered constructor function.
type constructorInfo struct {
	fn       reflect.Value
	fnType   reflect.Type
	params   []reflect.Type
	result   reflect.Type
	hasError bool
}

// analyzeConstructor validates fn and extracts its signature.
//
// A constructor is any func whose first result is the type it provides.
// An optional trailing error result reports construction failure.
func analyzeConstructor(fn any) (*constructorInfo, error) {
	if fn == nil {
		return nil, ErrInvalidConstructor("constructor is nil")
	}

	v := reflect.ValueOf(fn)
	t := v.Type()

	if t.Kind() != reflect.Func {
		return nil, ErrInvalidConstructor(fmt.Sprintf("expected a function, got %s", t.Kind()))
	}

	if t.IsVariadic() {
		return nil, ErrInvalidConstructor("variadic constructors are not supported")
	}

	if t.NumOut() == 0 {
		return nil, ErrInvalidConstructor("constructor must return at least one value")
	}

	if t.NumOut() > 2 {
		return nil, ErrInvalidConstructor("constructor must return (T) or (T, error)")
	}

	if t.Out(0) == errorType {
		return nil, ErrInvalidConstructor("first return value must not be an error")
	}

	hasError := false
	if t.NumOut() == 2 {
		if t.Out(1) != errorType {
			return nil, ErrInvalidConstructor("second return value must be an error")
		}
		hasError = true
	}

	params := make([]reflect.Type, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		params[i] = t.In(i)
	}

	return &constructorInfo{
		fn:       v,
		fnType:   t,
		params:   params,
		result:   t.Out(0),
		hasError: hasError,
	}, nil
}

// call invokes the constructor with args and unpacks its results.
func (ci *constructorInfo) call(args []reflect.Value) (any, error) {
	results := ci.fn.Call(args)

	if ci.hasError {
		if errVal := results[1]; !errVal.IsNil() {
			// The error is handed back untouched so callers can match it
			// with errors.Is against their own sentinels.
			return nil, errVal.Interface().(error)
		}
	}

	return results[0].Interface(), nil
}

// Provide registers constructor functions. Each constructor is keyed by its
// first return type and runs at most once, on first demand of that type.
func (c *containerImpl) Provide(constructors ...any) error {
	for _, fn := range constructors {
		info, err := analyzeConstructor(fn)
		if err != nil {
			return err
		}

		c.mu.Lock()
		if _, exists := c.providers[info.result]; exists {
			c.mu.Unlock()

			return ErrAlreadyProvided(info.result)
		}

		c.providers[info.result] = info
		c.graph.AddNode(info.result, info.params)
		c.mu.Unlock()

		c.logger.Debug("constructor registered",
			logger.String("type", typeName(info.result)),
			logger.Int("params", len(info.params)),
		)
	}

	return nil
}

// invoke calls a provided constructor, resolving its parameters first.
func (c *containerImpl) invoke(t reflect.Type, info *constructorInfo, stack []reflect.Type) (any, error) {
	start := time.Now()

	args := make([]reflect.Value, len(info.params))
	for i, paramType := range info.params {
		dep, err := c.resolve(paramType, stack)
		if err != nil {
			return nil, err
		}

		if dep == nil {
			args[i] = reflect.Zero(paramType)

			continue
		}

		dv := reflect.ValueOf(dep)
		if !dv.Type().AssignableTo(paramType) {
			return nil, ErrTypeMismatch(t, strconv.Itoa(i), paramType, dep)
		}

		args[i] = dv
	}

	instance, err := info.call(args)
	if err != nil {
		// A failed constructor leaves no registry entry; a later Get retries.
		return nil, err
	}

	c.observeConstruction(t, start)
	c.logger.Debug("constructed instance",
		logger.String("type", typeName(t)),
		logger.String("source", "constructor"),
	)

	return c.memoize(t, instance), nil
}
