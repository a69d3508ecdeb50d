package bufferpool

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const meterPrefix = "pagecache.bufferpool."

type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	WriteBacks  uint64
	Allocations uint64
	Disposals   uint64
}

type stats struct {
	Stats

	hits        metric.Int64Counter
	misses      metric.Int64Counter
	evictions   metric.Int64Counter
	writeBacks  metric.Int64Counter
	allocations metric.Int64Counter
	disposals   metric.Int64Counter
}

func newStats(meter metric.Meter, log *zap.Logger) *stats {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("")
	}

	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(meterPrefix+name, metric.WithDescription(desc))
		if err != nil {
			log.Warn("failed to create counter, falling back to noop", zap.String("name", name), zap.Error(err))
			return noop.Int64Counter{}
		}
		return c
	}

	return &stats{
		hits:        counter("hits", "page requests served from the pool"),
		misses:      counter("misses", "page requests that read the page file"),
		evictions:   counter("evictions", "pages evicted by the clock sweep"),
		writeBacks:  counter("writebacks", "dirty pages written to their file"),
		allocations: counter("allocations", "pages created through the pool"),
		disposals:   counter("disposals", "pages deleted through the pool"),
	}
}

func (s *stats) hit() {
	s.Hits++
	s.hits.Add(context.Background(), 1)
}

func (s *stats) miss() {
	s.Misses++
	s.misses.Add(context.Background(), 1)
}

func (s *stats) evicted() {
	s.Evictions++
	s.evictions.Add(context.Background(), 1)
}

func (s *stats) wroteBack() {
	s.WriteBacks++
	s.writeBacks.Add(context.Background(), 1)
}

func (s *stats) allocated() {
	s.Allocations++
	s.allocations.Add(context.Background(), 1)
}

func (s *stats) disposed() {
	s.Disposals++
	s.disposals.Add(context.Background(), 1)
}

func (m *Manager) Stats() Stats {
	return m.stats.Stats
}
