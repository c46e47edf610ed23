package util

import (
	"fmt"
	"reflect"
)

// IsStructInitialized reports whether all pointer, interface and map fields
// of the given struct are non-nil. Fields tagged `wire:"-"` are skipped, as
// those are initialized outside the wire graph.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("nil value of type %s", v.Type())
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("wire") == "-" {
			continue
		}

		value := v.Field(i)
		switch value.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func:
			if value.IsNil() {
				return fmt.Errorf("field %s.%s is not initialized", t.Name(), field.Name)
			}
		default:
			// value types are always considered initialized
		}
	}

	return nil
}
