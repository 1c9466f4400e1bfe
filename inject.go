package alloy

import (
	"fmt"
	"reflect"
)

// Inject populates the injectable fields of target, an existing pointer to
// struct, using the container's resolution rules. Fields the caller already
// set are left alone. The target itself is never bound in the registry, so
// injecting into a value does not affect later lookups of its type.
//
// Example:
//
//	app := &App{Config: cfg} // Config stays as given
//	if err := alloy.Inject(c, app); err != nil {
//	    return err
//	}
func Inject(c Alloy, target any) error {
	if target == nil {
		return ErrNilType
	}

	ci, err := analyzeClass(reflect.TypeOf(target))
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(target)
	if rv.IsNil() {
		return fmt.Errorf("cannot inject into nil %s", typeName(ci.typ))
	}

	v := rv.Elem()

	for _, f := range ci.fields {
		fv := v.Field(f.index)
		if !fv.IsZero() {
			continue
		}

		if f.kind == KindUnresolvable {
			if f.optional {
				continue
			}

			return ErrUnresolvableParameter(ci.typ, f.name, f.typ)
		}

		dep, err := c.Get(f.typ)
		if err != nil {
			if f.optional {
				continue
			}

			return err
		}

		if dep == nil {
			continue
		}

		dv := reflect.ValueOf(dep)
		if !dv.Type().AssignableTo(f.typ) {
			return ErrTypeMismatch(ci.typ, f.name, f.typ, dep)
		}

		fv.Set(dv)
	}

	return nil
}

// MustInject is Inject, panicking on error. Use only during startup.
func MustInject(c Alloy, target any) {
	if err := Inject(c, target); err != nil {
		panic(err)
	}
}
