// Package nilkit answers nil and zero questions about values of a type parameter.
package nilkit

import (
	"reflect"

	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/pkg/zerokit"
)

// IsNil reports whether v holds nil.
// Only nillable kinds can be nil, an int or a struct never is.
func IsNil[T any](v T) bool {
	return any(v) == nil || reflectkit.IsNil(reflect.ValueOf(v))
}

// IsZero reports whether v is nil or the zero value of its type.
// Empty slices and maps count as zero as well.
func IsZero[T any](v T) bool {
	if IsNil(v) || zerokit.IsZero(v) {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Map:
		return reflectkit.IsEmpty(rv)
	default:
		return false
	}
}
