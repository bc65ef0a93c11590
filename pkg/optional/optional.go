// Package optional implements a container that holds zero or one value.
//
// An optional.Value makes "may be absent" part of a signature.
// Chaining Map and FlatMap across a pipeline removes the nested nil checks:
// once a stage is absent, every following stage is skipped,
// and a single OrElse at the end supplies the fallback.
//
//	balance := optional.FlatMap(customer, accountOf)
//	amount := optional.Map(balance, toEUR).OrElse(0)
package optional

import (
	"fmt"
	"iter"

	"go.llib.dev/fpkit/internal/nilkit"
	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrNilValue is the panic value of Of when it receives a nil value.
	ErrNilValue errorkit.Error = "optional: nil value"
	// ErrAbsent is returned by OrElseErr when no error constructor is given.
	ErrAbsent errorkit.Error = "optional: value is absent"
)

// Value holds at most one value of T.
// The zero Value is absent.
type Value[T any] struct {
	value   T
	present bool
}

// Of returns a present Value.
// It panics with ErrNilValue when v is nil, use TryOf or OfNullable when v may be nil.
func Of[T any](v T) Value[T] {
	o, err := TryOf(v)
	if err != nil {
		panic(err)
	}
	return o
}

// TryOf is the error returning variant of Of.
func TryOf[T any](v T) (Value[T], error) {
	if nilkit.IsNil(v) {
		return Value[T]{}, ErrNilValue.F("%T", v)
	}
	return Value[T]{value: v, present: true}, nil
}

// OfNullable returns an absent Value when v is nil, and a present one otherwise.
// Values of non nillable kinds such as int or string are always present.
func OfNullable[T any](v T) Value[T] {
	if nilkit.IsNil(v) {
		return Value[T]{}
	}
	return Value[T]{value: v, present: true}
}

// OfNonZero returns an absent Value when v is nil or the zero value of T.
func OfNonZero[T any](v T) Value[T] {
	if nilkit.IsZero(v) {
		return Value[T]{}
	}
	return Value[T]{value: v, present: true}
}

// FromPointer dereferences p into a present Value, or returns an absent Value for a nil p.
func FromPointer[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Value[T]{value: *p, present: true}
}

// Empty returns an absent Value.
func Empty[T any]() Value[T] { return Value[T]{} }

// Map applies fn to the contained value.
// fn is not invoked when o is absent, and a nil result makes the Value absent.
func Map[T, S any](o Value[T], fn func(T) S) Value[S] {
	if !o.present {
		return Value[S]{}
	}
	return OfNullable(fn(o.value))
}

// FlatMap applies fn to the contained value and returns its result as is.
// fn is not invoked when o is absent.
func FlatMap[T, S any](o Value[T], fn func(T) Value[S]) Value[S] {
	if !o.present {
		return Value[S]{}
	}
	return fn(o.value)
}

func (o Value[T]) IsPresent() bool { return o.present }

func (o Value[T]) IsEmpty() bool { return !o.present }

// Get returns the contained value and reports whether it was present.
func (o Value[T]) Get() (T, bool) { return o.value, o.present }

// Filter keeps the value only when it satisfies the predicate.
func (o Value[T]) Filter(predicate func(T) bool) Value[T] {
	if !o.present || !predicate(o.value) {
		return Value[T]{}
	}
	return o
}

func (o Value[T]) OrElse(defaultValue T) T {
	if o.present {
		return o.value
	}
	return defaultValue
}

// OrElseGet returns the contained value, or the result of fn when absent.
// fn is only invoked when the value is absent.
func (o Value[T]) OrElseGet(fn func() T) T {
	if o.present {
		return o.value
	}
	return fn()
}

// OrElseErr returns the contained value,
// or the error made by mkErr when the value is absent.
// A nil mkErr results in ErrAbsent.
func (o Value[T]) OrElseErr(mkErr func() error) (T, error) {
	if o.present {
		return o.value, nil
	}
	var zero T
	if mkErr == nil {
		return zero, ErrAbsent
	}
	return zero, mkErr()
}

// Or returns o when present, otherwise the Value made by fn.
func (o Value[T]) Or(fn func() Value[T]) Value[T] {
	if o.present {
		return o
	}
	return fn()
}

// IfPresent runs fn with the value when present.
func (o Value[T]) IfPresent(fn func(T)) {
	if o.present {
		fn(o.value)
	}
}

func (o Value[T]) IfPresentOrElse(fn func(T), orElse func()) {
	if o.present {
		fn(o.value)
		return
	}
	orElse()
}

// Iter returns an iterator with zero or one element.
func (o Value[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if o.present {
			yield(o.value)
		}
	}
}

func (o Value[T]) String() string {
	if !o.present {
		return "optional.Empty"
	}
	return fmt.Sprintf("optional.Of(%v)", o.value)
}
