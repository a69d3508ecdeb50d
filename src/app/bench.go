package app

import (
	"context"
	"encoding/binary"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/panjf2000/ants"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Blackdeer1524/pagecache/src/bufferpool"
	"github.com/Blackdeer1524/pagecache/src/pkg/common"
)

// BenchEntrypoint runs a random fetch/release workload over the page file
// from a pool of workers and logs the pool statistics.
type BenchEntrypoint struct {
	pagedApp

	// Report, if set, receives the statistics of the run.
	Report func(bufferpool.Stats)

	pages   []common.PageID
	workers *ants.Pool
	// writers of the same page take the same stripe
	stripes [64]sync.Mutex
}

func (e *BenchEntrypoint) Init(_ context.Context) error {
	if err := e.init(true); err != nil {
		return err
	}

	for e.file.PageCount() < e.cfg.Pages {
		if _, err := e.file.AllocatePage(); err != nil {
			return errors.Wrap(err, "prepare pages")
		}
	}
	e.pages = e.file.Pages()

	workers, err := ants.NewPool(e.cfg.Workers)
	if err != nil {
		return errors.Wrap(err, "create worker pool")
	}
	e.workers = workers

	return nil
}

func (e *BenchEntrypoint) Run(ctx context.Context) (err error) {
	runID := uuid.NewString()

	ctx, span := otel.Tracer(meterName).Start(
		ctx,
		"bench",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("bench.workers", e.cfg.Workers),
			attribute.Int("bench.ops", e.cfg.Ops),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "bench failed")
		}
		span.End()
	}()

	var (
		wg       sync.WaitGroup
		exceeded atomic.Int64

		mu   sync.Mutex
		errs error
	)

	start := time.Now()
	for i := range e.cfg.Ops {
		if ctx.Err() != nil {
			break
		}

		pageNo := e.pages[rand.Intn(len(e.pages))]
		write := i%4 == 0

		wg.Add(1)
		submitErr := e.workers.Submit(func() {
			defer wg.Done()

			err := e.touch(pageNo, write)
			switch {
			case err == nil:
			case errors.Is(err, bufferpool.ErrBufferExceeded):
				exceeded.Add(1)
			default:
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = multierr.Append(errs, errors.Wrap(submitErr, "submit"))
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	stats := e.pool.Stats()
	span.SetAttributes(
		attribute.Int64("pool.hits", int64(stats.Hits)),
		attribute.Int64("pool.misses", int64(stats.Misses)),
	)
	e.log.Info(
		"bench finished",
		zap.String("run", runID),
		zap.Duration("took", time.Since(start)),
		zap.Int("workers", e.cfg.Workers),
		zap.Int64("buffer_exceeded", exceeded.Load()),
		zap.Uint64("hits", stats.Hits),
		zap.Uint64("misses", stats.Misses),
		zap.Uint64("evictions", stats.Evictions),
		zap.Uint64("writebacks", stats.WriteBacks),
	)
	if e.Report != nil {
		e.Report(stats)
	}

	return errs
}

// touch pins the page, bumps its counter when writing and releases it.
func (e *BenchEntrypoint) touch(pageNo common.PageID, write bool) error {
	h, err := e.pool.FetchPage(e.file, pageNo)
	if err != nil {
		return err
	}

	if write {
		mu := &e.stripes[uint64(pageNo)%uint64(len(e.stripes))]
		mu.Lock()
		data := h.Page().GetData()
		binary.BigEndian.PutUint64(data, binary.BigEndian.Uint64(data)+1)
		mu.Unlock()
	}

	return h.Release(write)
}

func (e *BenchEntrypoint) Close() error {
	if e.workers != nil {
		e.workers.Release()
	}

	return e.close()
}
