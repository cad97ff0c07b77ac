package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/zero-day-ai/huntgen/dialect"
)

func TestNewRecorder(t *testing.T) {
	t.Run("nil meter disables export", func(t *testing.T) {
		r, err := NewRecorder(nil)
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Nil(t, r.countCounter)
	})

	t.Run("meter creates instruments", func(t *testing.T) {
		provider := sdkmetric.NewMeterProvider()
		r, err := NewRecorder(provider.Meter("test"))
		require.NoError(t, err)
		assert.NotNil(t, r.countCounter)
		assert.NotNil(t, r.durationHistogram)
		assert.NotNil(t, r.scoreHistogram)
	})
}

func TestRecorderSummary(t *testing.T) {
	r, err := NewRecorder(nil)
	require.NoError(t, err)

	ctx := context.Background()
	r.Record(ctx, Generation{
		Dialect:     dialect.SPL,
		Success:     true,
		Duration:    100 * time.Millisecond,
		SyntaxScore: 100,
		Scored:      true,
	})
	r.Record(ctx, Generation{
		Dialect:     dialect.SPL,
		Success:     true,
		Duration:    300 * time.Millisecond,
		SyntaxScore: 80,
		Scored:      true,
	})
	r.Record(ctx, Generation{
		Dialect:  dialect.KQL,
		Success:  false,
		Duration: 50 * time.Millisecond,
	})

	s := r.Summary()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)

	require.Contains(t, s.ByDialect, dialect.SPL)
	spl := s.ByDialect[dialect.SPL]
	assert.Equal(t, 2, spl.Count)
	assert.InDelta(t, 200.0, spl.AvgDurationMillis, 0.001)
	assert.InDelta(t, 90.0, spl.AvgSyntaxScore, 0.001)

	require.Contains(t, s.ByDialect, dialect.KQL)
	kql := s.ByDialect[dialect.KQL]
	assert.Equal(t, 1, kql.Count)
	assert.Zero(t, kql.AvgSyntaxScore)
}

func TestRecorderEmptySummary(t *testing.T) {
	r, err := NewRecorder(nil)
	require.NoError(t, err)

	s := r.Summary()
	assert.Zero(t, s.Total)
	assert.Empty(t, s.ByDialect)
}

func TestRecorderExportsInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := NewRecorder(provider.Meter("test"))
	require.NoError(t, err)

	r.Record(context.Background(), Generation{
		Dialect:     dialect.SPL,
		Success:     true,
		Duration:    120 * time.Millisecond,
		SyntaxScore: 95,
		Scored:      true,
	})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := make(map[string]bool)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
	}
	assert.True(t, names["huntgen.generation.count"])
	assert.True(t, names["huntgen.generation.duration"])
	assert.True(t, names["huntgen.validation.score"])
}

func TestRecorderConcurrent(t *testing.T) {
	r, err := NewRecorder(nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record(context.Background(), Generation{
					Dialect:  dialect.DSL,
					Success:  true,
					Duration: time.Millisecond,
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, r.Summary().Total)
}
