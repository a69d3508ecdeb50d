package bufferpool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}

	return sums
}

func TestStats_MirroredToMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	f := newMemFile(1, 3)
	m := New(1, WithMeter(provider.Meter("test")))

	h := fetch(t, m, f, 1)
	require.NoError(t, h.Release(true))
	require.NoError(t, fetch(t, m, f, 1).Release(false))

	// evicts dirty page 1
	require.NoError(t, fetch(t, m, f, 2).Release(false))

	_, h3, err := m.AllocatePage(f)
	require.NoError(t, err)
	require.NoError(t, h3.Release(false))
	require.NoError(t, m.DisposePage(f, 4))

	assert.Equal(t, Stats{
		Hits:        1,
		Misses:      2,
		Evictions:   2,
		WriteBacks:  1,
		Allocations: 1,
		Disposals:   1,
	}, m.Stats())

	sums := collectSums(t, reader)
	assert.Equal(t, int64(1), sums[meterPrefix+"hits"])
	assert.Equal(t, int64(2), sums[meterPrefix+"misses"])
	assert.Equal(t, int64(2), sums[meterPrefix+"evictions"])
	assert.Equal(t, int64(1), sums[meterPrefix+"writebacks"])
	assert.Equal(t, int64(1), sums[meterPrefix+"allocations"])
	assert.Equal(t, int64(1), sums[meterPrefix+"disposals"])
}

func TestStats_NoMeter(t *testing.T) {
	f := newMemFile(1, 1)
	m := New(1)

	require.NoError(t, fetch(t, m, f, 1).Release(false))
	assert.EqualValues(t, 1, m.Stats().Misses)
}
