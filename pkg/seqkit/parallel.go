package seqkit

import (
	"context"
	"runtime"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/zerokit"
	"go.llib.dev/frameless/port/option"
	"golang.org/x/sync/errgroup"
)

// ParallelConfig tunes ParallelFold.
// It can be passed as a ParallelOption itself, its non zero fields override the defaults.
type ParallelConfig struct {
	// Workers is the max number of chunks folded at the same time.
	// Default is runtime.GOMAXPROCS(0).
	Workers int
	// ChunkSize is the number of elements a worker folds in one go.
	// Default is 64.
	ChunkSize int
}

func (c ParallelConfig) Configure(t *ParallelConfig) {
	t.Workers = zerokit.Coalesce(c.Workers, t.Workers)
	t.ChunkSize = zerokit.Coalesce(c.ChunkSize, t.ChunkSize)
}

func (c ParallelConfig) getWorkers() int {
	return zerokit.Coalesce(max(c.Workers, 0), runtime.GOMAXPROCS(0))
}

func (c ParallelConfig) getChunkSize() int {
	const defaultChunkSize = 64
	return zerokit.Coalesce(max(c.ChunkSize, 0), defaultChunkSize)
}

type ParallelOption option.Option[ParallelConfig]

// Workers sets the maximum number of chunks folded at the same time.
func Workers(n int) ParallelOption {
	return option.Func[ParallelConfig](func(c *ParallelConfig) { c.Workers = n })
}

// ChunkSize sets how many elements a worker folds at once.
func ChunkSize(n int) ParallelOption {
	return option.Func[ParallelConfig](func(c *ParallelConfig) { c.ChunkSize = n })
}

// ParallelFold reduces the sequence with a pool of workers.
//
// The sequence is pulled on the calling goroutine and cut into chunks.
// Every chunk is folded from identity with accumulate on its own worker,
// then the chunk results are combined with merge in source order, starting from identity.
// The result equals Reduce when accumulate and merge are associative and identity is a true identity.
// identity is shared by the workers, so it must not be mutated by accumulate.
//
// ParallelFold fails with ErrUnbounded for an infinite sequence,
// and with the context's error when ctx is done before the reduction completes.
func ParallelFold[T, R any](ctx context.Context, s *Seq[T], identity R, accumulate func(R, T) R, merge func(R, R) R, opts ...ParallelOption) (R, error) {
	var c = option.ToConfig[ParallelConfig](opts)
	st, err := s.take()
	if err != nil {
		return identity, err
	}
	defer st.release()
	if st.infinite {
		return identity, ErrUnbounded
	}
	st.demandAll()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.getWorkers())

	var (
		size     = c.getChunkSize()
		partials []*R
		chunk    = make([]T, 0, size)
	)
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		var (
			vs      = chunk
			partial = new(R)
		)
		chunk = make([]T, 0, size)
		partials = append(partials, partial)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			acc := identity
			for _, v := range vs {
				acc = accumulate(acc, v)
			}
			*partial = acc
			return nil
		})
	}

	pullErr := func() error {
		for {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, ok, err := st.next()
			if err != nil {
				return err
			}
			if !ok {
				flush()
				return nil
			}
			chunk = append(chunk, v)
			if size <= len(chunk) {
				flush()
			}
		}
	}()
	waitErr := g.Wait()
	if err := ctx.Err(); err != nil {
		return identity, err
	}
	if err := errorkit.Merge(pullErr, waitErr); err != nil {
		return identity, err
	}

	logger.Debug(ctx, "seqkit parallel fold",
		logging.Field("chunks", len(partials)),
		logging.Field("workers", c.getWorkers()))

	var result = identity
	for _, partial := range partials {
		result = merge(result, *partial)
	}
	return result, nil
}

// ParallelReduce is ParallelFold where combine both accumulates the elements and merges the chunk results.
func ParallelReduce[T any](ctx context.Context, s *Seq[T], identity T, combine func(T, T) T, opts ...ParallelOption) (T, error) {
	return ParallelFold(ctx, s, identity, combine, combine, opts...)
}
