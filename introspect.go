package alloy

import (
	"reflect"
	"strings"
)

// ParamKind classifies a constructor parameter by how it can be satisfied.
type ParamKind int

const (
	// KindConcrete is a pointer-to-struct parameter. The container can
	// auto-construct it on demand.
	KindConcrete ParamKind = iota

	// KindInterface is an interface parameter. It is satisfied only by a
	// registered instance or by a constructor returning the interface.
	KindInterface

	// KindUnresolvable is a parameter the container will never inject:
	// primitives, slices, maps, funcs, chans and plain struct values.
	KindUnresolvable
)

// String returns a human-readable name for the kind.
func (k ParamKind) String() string {
	switch k {
	case KindConcrete:
		return "concrete"
	case KindInterface:
		return "interface"
	default:
		return "unresolvable"
	}
}

// Param describes a single constructor parameter of a class type.
type Param struct {
	// Name is the declaring field's name.
	Name string

	// Type is the declared parameter type.
	Type reflect.Type

	// Kind classifies how the parameter can be satisfied.
	Kind ParamKind

	// Optional reports whether the field is tagged `optional:"true"`.
	// Optional parameters keep their zero value when resolution fails.
	Optional bool
}

// ParametersOf returns the ordered constructor parameters of a class type.
// Exported struct fields are the declared parameters; unexported fields are
// invisible. Accepts pointer-to-struct types, bare struct types, and
// interface types (which declare no constructor and yield an empty list).
// Pure inspection: no container state is read or written.
func ParametersOf(t reflect.Type) ([]Param, error) {
	if t == nil {
		return nil, ErrNilType
	}

	switch {
	case t.Kind() == reflect.Interface:
		return []Param{}, nil
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		t = t.Elem()
	case t.Kind() == reflect.Struct:
	default:
		return nil, ErrInvalidClass(t)
	}

	fields := fieldsOf(t)
	params := make([]Param, len(fields))

	for i, f := range fields {
		params[i] = Param{
			Name:     f.name,
			Type:     f.typ,
			Kind:     f.kind,
			Optional: f.optional,
		}
	}

	return params, nil
}

// fieldInfo describes one injectable field of a class.
type fieldInfo struct {
	name     string
	typ      reflect.Type
	kind     ParamKind
	optional bool
	index    int
}

// classInfo holds analyzed construction metadata for a pointer-to-struct type.
type classInfo struct {
	typ    reflect.Type // pointer type, used as the registry key
	elem   reflect.Type // struct type that gets allocated
	fields []fieldInfo
}

// analyzeClass inspects a type for auto-construction.
// Only pointer-to-struct types are constructible.
func analyzeClass(t reflect.Type) (*classInfo, error) {
	if t == nil {
		return nil, ErrNilType
	}

	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, ErrNotConstructible(t)
	}

	return &classInfo{
		typ:    t,
		elem:   t.Elem(),
		fields: fieldsOf(t.Elem()),
	}, nil
}

// fieldsOf walks the exported fields of a struct type in declaration order.
func fieldsOf(elem reflect.Type) []fieldInfo {
	fields := make([]fieldInfo, 0, elem.NumField())

	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		info := fieldInfo{
			name:  field.Name,
			typ:   field.Type,
			kind:  kindOf(field.Type),
			index: i,
		}

		if tag := field.Tag.Get("optional"); strings.ToLower(tag) == "true" {
			info.optional = true
		}

		fields = append(fields, info)
	}

	return fields
}

// kindOf classifies a parameter type. Pointer-to-struct and interface types
// are class references; everything else is unresolvable. Struct values are
// excluded: injecting one would copy it and break instance identity.
func kindOf(t reflect.Type) ParamKind {
	switch t.Kind() {
	case reflect.Ptr:
		if t.Elem().Kind() == reflect.Struct {
			return KindConcrete
		}

		return KindUnresolvable
	case reflect.Interface:
		return KindInterface
	default:
		return KindUnresolvable
	}
}

// classRefs returns the class-reference dependency types of analyzed fields.
func classRefs(fields []fieldInfo) []reflect.Type {
	var deps []reflect.Type

	for _, f := range fields {
		if f.kind != KindUnresolvable {
			deps = append(deps, f.typ)
		}
	}

	return deps
}

// typeName renders a type for messages and logs.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
