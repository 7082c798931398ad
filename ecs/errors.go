package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

var (
	// ErrEntityNotFound is returned when an operation targets an entity that is not live.
	ErrEntityNotFound = eris.New("entity not found")
	// ErrDuplicateComponentInBundle is returned when a bundle lists the same component twice.
	ErrDuplicateComponentInBundle = eris.New("duplicate component in bundle")
	// ErrInvalidComponent is returned for values that cannot be stored as components.
	ErrInvalidComponent = eris.New("invalid component")
)

// componentValue normalizes a component argument to the addressable value stored by the
// engine. Pointers are dereferenced so both T and *T are accepted.
func componentValue(component any) (reflect.Value, error) {
	if component == nil {
		return reflect.Value{}, eris.Wrap(ErrInvalidComponent, "nil component")
	}
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, eris.Wrapf(ErrInvalidComponent, "nil %s", v.Type())
		}
		v = v.Elem()
	}
	if err := validateComponentType(v.Type()); err != nil {
		return reflect.Value{}, err
	}
	return v, nil
}

// validateComponentType rejects types that are not plain values.
func validateComponentType(t reflect.Type) error {
	if t == nil {
		return eris.Wrap(ErrInvalidComponent, "nil type")
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return eris.Wrapf(ErrInvalidComponent, "%s: components cannot be pointers, maps, channels, functions or interfaces", t)
	}
	return nil
}
