package seqkit

import (
	"cmp"
	"iter"
	"strings"

	"go.llib.dev/fpkit/pkg/optional"
	"golang.org/x/exp/constraints"
)

// Number is the set of types Sum can add up.
type Number interface {
	constraints.Integer | constraints.Float
}

// each consumes the sequence and calls fn with every element until fn asks to stop.
// When finite is set, a sequence known to be infinite is refused before anything is pulled.
func (s *Seq[T]) each(finite bool, fn func(T) (bool, error)) error {
	st, err := s.take()
	if err != nil {
		return err
	}
	defer st.release()
	if finite {
		if st.infinite {
			return ErrUnbounded
		}
		st.demandAll()
	}
	for {
		v, ok, err := st.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		cont, err := fn(v)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// Collect materialises the sequence into a slice, keeping the order of the elements.
// The result is never nil on success.
func (s *Seq[T]) Collect() ([]T, error) {
	var vs = make([]T, 0)
	err := s.each(true, func(v T) (bool, error) {
		vs = append(vs, v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return vs, nil
}

// ForEach calls fn with every element, and stops at the first error fn returns.
func (s *Seq[T]) ForEach(fn func(T) error) error {
	return s.each(true, func(v T) (bool, error) {
		return true, fn(v)
	})
}

// Count will iterate over and count the total iterations number
func (s *Seq[T]) Count() (int, error) {
	var total int
	err := s.each(true, func(T) (bool, error) {
		total++
		return true, nil
	})
	return total, err
}

// First returns the first element of the sequence, without pulling any further.
// A nil first element is reported as absent.
func (s *Seq[T]) First() (optional.Value[T], error) {
	var first = optional.Empty[T]()
	err := s.each(false, func(v T) (bool, error) {
		first = optional.OfNullable(v)
		return false, nil
	})
	if err != nil {
		return optional.Empty[T](), err
	}
	return first, nil
}

// AnyMatch reports whether any element satisfies the predicate.
// It stops at the first match.
func (s *Seq[T]) AnyMatch(predicate func(T) bool) (bool, error) {
	var found bool
	err := s.each(false, func(v T) (bool, error) {
		found = predicate(v)
		return !found, nil
	})
	return found, err
}

// AllMatch reports whether every element satisfies the predicate.
// It stops at the first element that does not, and it is true for an empty sequence.
func (s *Seq[T]) AllMatch(predicate func(T) bool) (bool, error) {
	var all = true
	err := s.each(false, func(v T) (bool, error) {
		all = predicate(v)
		return all, nil
	})
	return all, err
}

// NoneMatch reports whether no element satisfies the predicate.
// It stops at the first match, and it is true for an empty sequence.
func (s *Seq[T]) NoneMatch(predicate func(T) bool) (bool, error) {
	found, err := s.AnyMatch(predicate)
	return !found, err
}

// All hands the sequence over to a range loop.
// A failure of the pipeline arrives as a final element with a non nil error.
// Breaking out of the loop stops the pipeline, so infinite sequences are fine here.
//
// The sequence is claimed when the loop starts, not when All is called.
func (s *Seq[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		err := s.each(false, func(v T) (bool, error) {
			return yield(v, nil), nil
		})
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Reduce folds the sequence from left to right, starting from the identity value.
func Reduce[T, R any](s *Seq[T], identity R, combine func(R, T) R) (R, error) {
	var acc = identity
	err := s.each(true, func(v T) (bool, error) {
		acc = combine(acc, v)
		return true, nil
	})
	if err != nil {
		return identity, err
	}
	return acc, nil
}

// Sum adds up the elements, an empty sequence sums to zero.
func Sum[N Number](s *Seq[N]) (N, error) {
	return Reduce[N, N](s, 0, func(sum, n N) N { return sum + n })
}

// Join concatenates the elements with sep between them.
func Join(s *Seq[string], sep string) (string, error) {
	var (
		b     strings.Builder
		first = true
	)
	err := s.each(true, func(v string) (bool, error) {
		if !first {
			b.WriteString(sep)
		}
		first = false
		b.WriteString(v)
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// ToSet collects the distinct elements into a set.
func ToSet[T comparable](s *Seq[T]) (map[T]struct{}, error) {
	var set = make(map[T]struct{})
	err := s.each(true, func(v T) (bool, error) {
		set[v] = struct{}{}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// ToMap collects the elements into a map, using the key and value functions.
// Two elements with the same key fail the collection with ErrDuplicateKey.
func ToMap[T any, K comparable, V any](s *Seq[T], key func(T) K, value func(T) V) (map[K]V, error) {
	var out = make(map[K]V)
	err := s.each(true, func(v T) (bool, error) {
		k := key(v)
		if _, ok := out[k]; ok {
			return false, ErrDuplicateKey.F("%v", k)
		}
		out[k] = value(v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Min returns the smallest element, or an absent value for an empty sequence.
func Min[T cmp.Ordered](s *Seq[T]) (optional.Value[T], error) {
	return extreme(s, func(v, current T) bool { return v < current })
}

// Max returns the largest element, or an absent value for an empty sequence.
func Max[T cmp.Ordered](s *Seq[T]) (optional.Value[T], error) {
	return extreme(s, func(v, current T) bool { return current < v })
}

func extreme[T any](s *Seq[T], replaces func(v, current T) bool) (optional.Value[T], error) {
	var (
		current T
		found   bool
	)
	err := s.each(true, func(v T) (bool, error) {
		if !found || replaces(v, current) {
			current = v
			found = true
		}
		return true, nil
	})
	if err != nil || !found {
		return optional.Empty[T](), err
	}
	return optional.Of(current), nil
}
