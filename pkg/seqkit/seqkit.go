// Package seqkit provides a lazily evaluated, single use sequence.
//
// # Summary
//
// A Seq describes a pipeline: a source and a chain of intermediate operations such as Map and Filter.
// Nothing is computed while the pipeline is assembled.
// Elements are pulled one by one through the stages only when a terminal operation,
// such as Collect or Reduce, consumes the sequence.
// Because every stage pulls from its upstream on demand,
// an infinite source like Naturals can be combined with Limit and still terminate.
//
//	squares, err := seqkit.Map(seqkit.Naturals[int]().Limit(3), func(n int) int { return n * n }).Collect()
//	// squares == []int{1, 4, 9}
//
// # Single use
//
// A Seq can take part in exactly one operation.
// Once an operation (intermediate or terminal) was applied to it,
// every further use reports ErrConsumed.
// Derive a new sequence from the source when the pipeline needs to run again.
//
// # Infinite sources
//
// Sources made with Generate, Iterate or Naturals are known to be infinite.
// Terminal operations that need the whole sequence (Collect, Reduce, Count, ...) refuse them with ErrUnbounded,
// unless a Limit bounds them first.
// Short-circuiting terminal operations (First, AnyMatch, AllMatch, NoneMatch, All) accept infinite sequences,
// it is the caller's responsibility that they find their answer.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Lazy_evaluation
// https://en.wikipedia.org/wiki/Pipeline_(software)
package seqkit

import (
	"iter"
	"sync"
	"sync/atomic"

	"go.llib.dev/fpkit/pkg/optional"
	"go.llib.dev/frameless/pkg/errorkit"
	"golang.org/x/exp/constraints"
)

const (
	// ErrConsumed is reported when a sequence is used after it already took part in an operation.
	ErrConsumed errorkit.Error = "seqkit: sequence already consumed"
	// ErrUnbounded is reported when an infinite sequence reaches a terminal operation that needs all of its elements.
	ErrUnbounded errorkit.Error = "seqkit: unbounded sequence"
	// ErrNegativeCount is reported by Limit and Skip for a negative count.
	ErrNegativeCount errorkit.Error = "seqkit: negative count"
	// ErrDuplicateKey is reported by ToMap when two elements map to the same key.
	ErrDuplicateKey errorkit.Error = "seqkit: duplicate key"
)

// Seq is a lazily evaluated, single use sequence of T.
// Use it through a pointer, as returned by the constructors.
// A nil *Seq behaves as an empty sequence.
type Seq[T any] struct {
	stage stage[T]
	used  atomic.Bool
}

// stage is a pull function over an upstream stage.
// next returns (v, true, nil) for an element, (zero, false, nil) at the end,
// and (zero, false, err) when the pipeline failed.
//
// exhaustive is shared by the stages between two bounding points of a pipeline (Limit, TakeWhile),
// and it is set once a terminal operation asks for every element.
type stage[T any] struct {
	next       func() (T, bool, error)
	stop       func()
	infinite   bool
	exhaustive *bool
}

func (st stage[T]) release() {
	if st.stop != nil {
		st.stop()
	}
}

func (st stage[T]) demandAll() {
	if st.exhaustive != nil {
		*st.exhaustive = true
	}
}

func (st stage[T]) demandsAll() bool {
	return st.exhaustive != nil && *st.exhaustive
}

// take claims the sequence for a single operation and hands over its stage.
func (s *Seq[T]) take() (stage[T], error) {
	if s == nil {
		return stage[T]{next: end[T], exhaustive: new(bool)}, nil
	}
	if !s.used.CompareAndSwap(false, true) {
		return stage[T]{}, ErrConsumed
	}
	if s.stage.next == nil {
		return stage[T]{next: end[T], stop: s.stage.stop, exhaustive: new(bool)}, nil
	}
	return s.stage, nil
}

func end[T any]() (T, bool, error) {
	var zero T
	return zero, false, nil
}

func newSeq[T any](next func() (T, bool, error), stop func(), infinite bool) *Seq[T] {
	return &Seq[T]{stage: stage[T]{next: next, stop: stop, infinite: infinite, exhaustive: new(bool)}}
}

// failed is a sequence whose terminal operation reports err.
func failed[T any](err error) *Seq[T] {
	return newSeq(func() (T, bool, error) {
		var zero T
		return zero, false, err
	}, nil, false)
}

// Of creates a finite sequence from the given values.
func Of[T any](vs ...T) *Seq[T] { return Slice(vs) }

// Slice creates a finite sequence that walks the slice in order.
func Slice[T any](vs []T) *Seq[T] {
	var i int
	return newSeq(func() (T, bool, error) {
		if len(vs) <= i {
			return end[T]()
		}
		v := vs[i]
		i++
		return v, true, nil
	}, nil, false)
}

// Empty sequence is used to represent nil result with Null object pattern
func Empty[T any]() *Seq[T] { return newSeq(end[T], nil, false) }

// FromIter adapts a standard iterator.
// The iterator is only started when the sequence is consumed,
// and it is stopped when the consuming operation returns.
// The iterator is assumed to be finite.
func FromIter[T any](i iter.Seq[T]) *Seq[T] {
	if i == nil {
		return Empty[T]()
	}
	var (
		next func() (T, bool)
		stop func()
	)
	return newSeq(func() (T, bool, error) {
		if next == nil {
			next, stop = iter.Pull(i)
		}
		v, ok := next()
		return v, ok, nil
	}, func() {
		if stop != nil {
			stop()
		}
	}, false)
}

// FromErrIter adapts an iterator that reports failures as its second value.
// The first non nil error aborts the consuming operation with that error.
func FromErrIter[T any](i iter.Seq2[T, error]) *Seq[T] {
	if i == nil {
		return Empty[T]()
	}
	var (
		next func() (T, error, bool)
		stop func()
	)
	return newSeq(func() (T, bool, error) {
		if next == nil {
			next, stop = iter.Pull2(i)
		}
		v, err, ok := next()
		if err != nil {
			var zero T
			return zero, false, err
		}
		return v, ok, nil
	}, func() {
		if stop != nil {
			stop()
		}
	}, false)
}

// FromPull adapts a pull function.
// The stop functions are called once, when the consuming operation returns.
// The pull function is assumed to end eventually.
func FromPull[T any](next func() (T, bool), stops ...func()) *Seq[T] {
	var done bool
	return newSeq(func() (T, bool, error) {
		if done {
			return end[T]()
		}
		v, ok := next()
		if !ok {
			done = true
			return end[T]()
		}
		return v, true, nil
	}, sync.OnceFunc(func() {
		for _, stop := range stops {
			stop()
		}
	}), false)
}

// FromOptional creates a sequence with zero or one element.
func FromOptional[T any](o optional.Value[T]) *Seq[T] {
	v, ok := o.Get()
	if !ok {
		return Empty[T]()
	}
	return Of(v)
}

// Generate creates an infinite sequence where every element is made by fn when it is pulled.
func Generate[T any](fn func() T) *Seq[T] {
	return newSeq(func() (T, bool, error) {
		return fn(), true, nil
	}, nil, true)
}

// Iterate creates the infinite sequence seed, fn(seed), fn(fn(seed)), ...
func Iterate[T any](seed T, fn func(T) T) *Seq[T] {
	var (
		current T
		started bool
	)
	return newSeq(func() (T, bool, error) {
		if !started {
			started = true
			current = seed
		} else {
			current = fn(current)
		}
		return current, true, nil
	}, nil, true)
}

// Naturals creates the infinite sequence of natural numbers: 1, 2, 3, ...
func Naturals[N constraints.Integer]() *Seq[N] {
	return Iterate[N](1, func(n N) N { return n + 1 })
}

// Range returns a sequence that will range between the specified `begin` and the `end` number, both inclusive.
// The sequence is empty when end is smaller than begin.
func Range[N constraints.Integer](begin, end N) *Seq[N] {
	var (
		current = begin
		done    = end < begin
	)
	return newSeq(func() (N, bool, error) {
		if done {
			return 0, false, nil
		}
		v := current
		if current == end {
			done = true
		} else {
			current++
		}
		return v, true, nil
	}, nil, false)
}
