// Package either implements a container that holds exactly one of two values.
//
// By convention Left carries the failure and Right carries the success,
// and the transformations (Map, FlatMap) are right biased.
// The contained value is only reachable through Fold,
// which forces the caller to handle both cases.
package either

import (
	"fmt"

	"go.llib.dev/fpkit/internal/nilkit"
	"go.llib.dev/fpkit/pkg/optional"
	"go.llib.dev/frameless/pkg/errorkit"
)

// ErrNilValue is the panic value of Left and Right when they receive a nil payload.
const ErrNilValue errorkit.Error = "either: nil value"

// Value holds either a left value of L or a right value of R, never both.
// The zero Value is a Left with the zero value of L.
type Value[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left returns a left biased Value.
// It panics with ErrNilValue when l is nil.
func Left[L, R any](l L) Value[L, R] {
	if nilkit.IsNil(l) {
		panic(ErrNilValue.F("left payload of type %T", l))
	}
	return Value[L, R]{left: l}
}

// Right returns a right biased Value.
// It panics with ErrNilValue when r is nil.
func Right[L, R any](r R) Value[L, R] {
	if nilkit.IsNil(r) {
		panic(ErrNilValue.F("right payload of type %T", r))
	}
	return Value[L, R]{right: r, isRight: true}
}

// FromResult turns a conventional (value, error) pair into a Value.
// A non nil err makes it a Left, otherwise v becomes the Right value.
// A nil v without an error is a Left with ErrNilValue.
func FromResult[R any](v R, err error) Value[error, R] {
	if err != nil {
		return Value[error, R]{left: err}
	}
	if nilkit.IsNil(v) {
		return Value[error, R]{left: ErrNilValue.F("right payload of type %T", v)}
	}
	return Value[error, R]{right: v, isRight: true}
}

func (e Value[L, R]) IsLeft() bool { return !e.isRight }

func (e Value[L, R]) IsRight() bool { return e.isRight }

// Fold invokes exactly one of the handlers, depending on the side e holds, and returns its result.
func Fold[L, R, X any](e Value[L, R], onLeft func(L) X, onRight func(R) X) X {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// Map transforms the right value. A Left passes through unchanged.
// Like Right, it panics with ErrNilValue when fn returns nil.
func Map[L, R, S any](e Value[L, R], fn func(R) S) Value[L, S] {
	if !e.isRight {
		return Value[L, S]{left: e.left}
	}
	return Right[L](fn(e.right))
}

// MapLeft transforms the left value. A Right passes through unchanged.
// Like Left, it panics with ErrNilValue when fn returns nil.
func MapLeft[L, R, M any](e Value[L, R], fn func(L) M) Value[M, R] {
	if e.isRight {
		return Value[M, R]{right: e.right, isRight: true}
	}
	return Left[M, R](fn(e.left))
}

// FlatMap chains a step that may itself fail.
// fn's result is returned as is for a Right, and a Left passes through unchanged.
func FlatMap[L, R, S any](e Value[L, R], fn func(R) Value[L, S]) Value[L, S] {
	if !e.isRight {
		return Value[L, S]{left: e.left}
	}
	return fn(e.right)
}

// FlatMapLeft is the left biased counterpart of FlatMap, useful for recovering from a failure.
func FlatMapLeft[L, R, M any](e Value[L, R], fn func(L) Value[M, R]) Value[M, R] {
	if e.isRight {
		return Value[M, R]{right: e.right, isRight: true}
	}
	return fn(e.left)
}

// Swap exchanges the sides.
func (e Value[L, R]) Swap() Value[R, L] {
	if e.isRight {
		return Value[R, L]{left: e.right}
	}
	return Value[R, L]{right: e.left, isRight: true}
}

// RightOptional projects the right value into an optional.Value.
func RightOptional[L, R any](e Value[L, R]) optional.Value[R] {
	if !e.isRight {
		return optional.Empty[R]()
	}
	return optional.OfNullable(e.right)
}

// LeftOptional projects the left value into an optional.Value.
func LeftOptional[L, R any](e Value[L, R]) optional.Value[L] {
	if e.isRight {
		return optional.Empty[L]()
	}
	return optional.OfNullable(e.left)
}

func (e Value[L, R]) String() string {
	if e.isRight {
		return fmt.Sprintf("either.Right(%v)", e.right)
	}
	return fmt.Sprintf("either.Left(%v)", e.left)
}
