package alloy

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeNilType indicates a nil type was used as a lookup key
	CodeNilType = "NIL_TYPE"

	// CodeInvalidClass indicates a type that cannot be introspected as a class
	CodeInvalidClass = "INVALID_CLASS"

	// CodeUnresolvableParameter indicates a field whose type can never be injected
	CodeUnresolvableParameter = "UNRESOLVABLE_PARAMETER"

	// CodeNotConstructible indicates a type the container cannot build
	CodeNotConstructible = "NOT_CONSTRUCTIBLE"

	// CodeCircularDependency indicates a dependency cycle was detected
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeTypeMismatch indicates a value does not fit where resolution put it
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeInvalidConstructor indicates a constructor function of the wrong shape
	CodeInvalidConstructor = "INVALID_CONSTRUCTOR"

	// CodeAlreadyProvided indicates a constructor is already registered for a type
	CodeAlreadyProvided = "ALREADY_PROVIDED"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrNilType is returned when a nil reflect.Type is used as a lookup key.
var ErrNilType = errs.NewError(CodeNilType, "type cannot be nil", nil)

// ErrUnresolvableSentinel is a sentinel error for unresolvable parameters (for error checking).
var ErrUnresolvableSentinel = errs.NewError(CodeUnresolvableParameter, "unresolvable parameter", nil)

// ErrNotConstructibleSentinel is a sentinel error for non-constructible types (for error checking).
var ErrNotConstructibleSentinel = errs.NewError(CodeNotConstructible, "type not constructible", nil)

// ErrCircularDependencySentinel is a sentinel error for circular dependency (for error checking).
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrInvalidClass creates an error for a type that is not a class type.
func ErrInvalidClass(t reflect.Type) *errs.Error {
	return errs.NewError(
		CodeInvalidClass,
		fmt.Sprintf("%s is not a class type (want a pointer to struct or an interface)", typeName(t)),
		nil,
	)
}

// ErrUnresolvableParameter creates an error for a constructor parameter whose
// declared type is not a class reference. The owning type and the parameter
// are both named so the failure can be traced to its declaration site.
func ErrUnresolvableParameter(owner reflect.Type, field string, fieldType reflect.Type) *errs.Error {
	return errs.NewError(
		CodeUnresolvableParameter,
		fmt.Sprintf("cannot resolve parameter '%s' of %s: %s is not a class type", field, typeName(owner), typeName(fieldType)),
		nil,
	)
}

// ErrNotConstructible creates an error for a type that cannot be auto-constructed.
func ErrNotConstructible(t reflect.Type) *errs.Error {
	msg := fmt.Sprintf("cannot construct %s: not a pointer to struct and no instance or constructor is registered", typeName(t))
	if t != nil && t.Kind() == reflect.Interface {
		msg = fmt.Sprintf("cannot construct interface %s: no instance or constructor is registered for it", typeName(t))
	}

	return errs.NewError(CodeNotConstructible, msg, nil)
}

// ErrCircularDependency creates an error for a detected dependency cycle.
// The chain lists the resolution path, ending at the type that re-entered it.
func ErrCircularDependency(chain []reflect.Type) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %s", joinTypeNames(chain, " -> ")),
		nil,
	)
}

// ErrTypeMismatch creates an error for a value that cannot be injected into a parameter.
func ErrTypeMismatch(owner reflect.Type, field string, want reflect.Type, got any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("cannot inject parameter '%s' of %s: %T is not assignable to %s", field, typeName(owner), got, typeName(want)),
		nil,
	)
}

// ErrInvalidConstructor creates an error for a Provide argument of the wrong shape.
func ErrInvalidConstructor(reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidConstructor,
		fmt.Sprintf("invalid constructor: %s", reason),
		nil,
	)
}

// ErrAlreadyProvided creates an error for a duplicate constructor registration.
func ErrAlreadyProvided(t reflect.Type) *errs.Error {
	return errs.NewError(
		CodeAlreadyProvided,
		fmt.Sprintf("constructor already provided for type %s", typeName(t)),
		nil,
	)
}

// joinTypeNames renders a resolution chain for error messages.
func joinTypeNames(chain []reflect.Type, sep string) string {
	names := make([]string, len(chain))
	for i, t := range chain {
		names[i] = typeName(t)
	}

	return strings.Join(names, sep)
}
