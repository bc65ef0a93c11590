package seqkit

// derive builds the next stage of a pipeline on top of up.
// Releasing the derived stage releases up.
func derive[T, S any](up stage[T], next func() (S, bool, error), infinite bool) *Seq[S] {
	s := newSeq(next, up.stop, infinite)
	s.stage.exhaustive = up.exhaustive
	return s
}

// bound is derive for stages that may stop before their upstream ends.
// The demand of the downstream terminal does not reach past them.
func bound[T, S any](up stage[T], next func() (S, bool, error)) *Seq[S] {
	return newSeq(next, up.stop, false)
}

// Map allows you to do additional transformation on the values.
// fn is applied to each element when it is pulled.
func Map[T, S any](s *Seq[T], fn func(T) S) *Seq[S] {
	up, err := s.take()
	if err != nil {
		return failed[S](err)
	}
	return derive(up, func() (S, bool, error) {
		v, ok, err := up.next()
		if err != nil || !ok {
			var zero S
			return zero, false, err
		}
		return fn(v), true, nil
	}, up.infinite)
}

// FlatMap replaces every element with the sequence made by fn, and flattens them into one sequence.
// The source order and the order within each produced sequence are kept.
// A produced sequence is consumed by FlatMap, it must not be used elsewhere.
//
// An infinite produced sequence fails the pipeline with ErrUnbounded
// when the terminal operation needs every element and no Limit or TakeWhile bounds it.
func FlatMap[T, S any](s *Seq[T], fn func(T) *Seq[S]) *Seq[S] {
	up, err := s.take()
	if err != nil {
		return failed[S](err)
	}
	var current *stage[S]
	var closeCurrent = func() {
		if current != nil {
			current.release()
			current = nil
		}
	}
	flat := newSeq(func() (S, bool, error) {
		var zero S
		for {
			if current == nil {
				v, ok, err := up.next()
				if err != nil || !ok {
					return zero, false, err
				}
				sub, err := fn(v).take()
				if err != nil {
					return zero, false, err
				}
				if sub.infinite && up.demandsAll() {
					sub.release()
					return zero, false, ErrUnbounded.F("flat map produced an infinite sequence")
				}
				current = &sub
			}
			v, ok, err := current.next()
			if err != nil {
				return zero, false, err
			}
			if ok {
				return v, true, nil
			}
			closeCurrent()
		}
	}, func() {
		closeCurrent()
		up.release()
	}, up.infinite)
	flat.stage.exhaustive = up.exhaustive
	return flat
}

// Filter keeps the elements that satisfy the predicate, in their original order.
func (s *Seq[T]) Filter(predicate func(T) bool) *Seq[T] {
	up, err := s.take()
	if err != nil {
		return failed[T](err)
	}
	return derive(up, func() (T, bool, error) {
		for {
			v, ok, err := up.next()
			if err != nil || !ok {
				return v, false, err
			}
			if predicate(v) {
				return v, true, nil
			}
		}
	}, up.infinite)
}

// FilterNot keeps the elements where the predicate is false.
func (s *Seq[T]) FilterNot(predicate func(T) bool) *Seq[T] {
	return s.Filter(func(v T) bool { return !predicate(v) })
}

// Limit yields at most n elements.
// After the nth element upstream is no longer pulled,
// which makes Limit the way to bound an infinite sequence.
func (s *Seq[T]) Limit(n int) *Seq[T] {
	up, err := s.take()
	if err != nil {
		return failed[T](err)
	}
	if n < 0 {
		up.release()
		return failed[T](ErrNegativeCount.F("limit: %d", n))
	}
	var taken int
	return bound(up, func() (T, bool, error) {
		if n <= taken {
			return end[T]()
		}
		v, ok, err := up.next()
		if err != nil || !ok {
			return v, false, err
		}
		taken++
		return v, true, nil
	})
}

// Skip drops the first n elements.
func (s *Seq[T]) Skip(n int) *Seq[T] {
	up, err := s.take()
	if err != nil {
		return failed[T](err)
	}
	if n < 0 {
		up.release()
		return failed[T](ErrNegativeCount.F("skip: %d", n))
	}
	var skipped bool
	return derive(up, func() (T, bool, error) {
		if !skipped {
			skipped = true
			for i := 0; i < n; i++ {
				v, ok, err := up.next()
				if err != nil || !ok {
					return v, false, err
				}
			}
		}
		return up.next()
	}, up.infinite)
}

// TakeWhile yields elements until the first one that fails the predicate.
//
// The result is no longer treated as infinite,
// making sure that the predicate eventually fails is up to the caller.
func (s *Seq[T]) TakeWhile(predicate func(T) bool) *Seq[T] {
	up, err := s.take()
	if err != nil {
		return failed[T](err)
	}
	var done bool
	return bound(up, func() (T, bool, error) {
		if done {
			return end[T]()
		}
		v, ok, err := up.next()
		if err != nil || !ok {
			return v, false, err
		}
		if !predicate(v) {
			done = true
			return end[T]()
		}
		return v, true, nil
	})
}

// Peek calls fn with every element as it passes through the pipeline.
func (s *Seq[T]) Peek(fn func(T)) *Seq[T] {
	up, err := s.take()
	if err != nil {
		return failed[T](err)
	}
	return derive(up, func() (T, bool, error) {
		v, ok, err := up.next()
		if err == nil && ok {
			fn(v)
		}
		return v, ok, err
	}, up.infinite)
}

// Distinct drops the elements that were already yielded.
func Distinct[T comparable](s *Seq[T]) *Seq[T] {
	up, err := s.take()
	if err != nil {
		return failed[T](err)
	}
	var seen = make(map[T]struct{})
	return derive(up, func() (T, bool, error) {
		for {
			v, ok, err := up.next()
			if err != nil || !ok {
				return v, false, err
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			return v, true, nil
		}
	}, up.infinite)
}
