// Package metrics records query generation observability data. Instruments
// are created once at construction and reused for every generation; an
// in-memory aggregate summary is kept alongside the OpenTelemetry
// instruments so callers can report rollups without a metrics backend.
package metrics

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zero-day-ai/huntgen/dialect"
)

// Recorder captures per-generation metrics. Safe for concurrent use.
type Recorder struct {
	// countCounter increments for each generation attempt
	countCounter metric.Int64Counter

	// durationHistogram records generation duration in milliseconds
	durationHistogram metric.Float64Histogram

	// scoreHistogram records validation syntax scores (0 to 100)
	scoreHistogram metric.Float64Histogram

	mu        sync.Mutex
	total     int
	succeeded int
	failed    int
	byDialect map[dialect.Dialect]*dialectAggregate
}

type dialectAggregate struct {
	count         int
	totalDuration time.Duration
	totalScore    int
	scored        int
}

// Summary is a point-in-time rollup of everything recorded so far.
type Summary struct {
	Total     int                              `json:"total"`
	Succeeded int                              `json:"succeeded"`
	Failed    int                              `json:"failed"`
	ByDialect map[dialect.Dialect]DialectStats `json:"by_dialect"`
}

// DialectStats aggregates generations for one dialect.
type DialectStats struct {
	Count             int     `json:"count"`
	AvgDurationMillis float64 `json:"avg_duration_ms"`
	AvgSyntaxScore    float64 `json:"avg_syntax_score"`
}

// NewRecorder creates a Recorder with instruments from the given meter.
// A nil meter disables OpenTelemetry export; the in-memory summary still
// accumulates.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	r := &Recorder{byDialect: make(map[dialect.Dialect]*dialectAggregate)}

	if meter == nil {
		return r, nil
	}

	var err error

	r.countCounter, err = meter.Int64Counter(
		"huntgen.generation.count",
		metric.WithDescription("Number of query generations attempted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create count counter: %w", err)
	}

	r.durationHistogram, err = meter.Float64Histogram(
		"huntgen.generation.duration",
		metric.WithDescription("Query generation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	r.scoreHistogram, err = meter.Float64Histogram(
		"huntgen.validation.score",
		metric.WithDescription("Validation syntax score from 0 (broken) to 100 (clean)"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	return r, nil
}

// Generation describes one completed (or failed) generation attempt.
type Generation struct {
	Dialect  dialect.Dialect
	Success  bool
	Duration time.Duration

	// SyntaxScore is the validator's score for the generated query. Only
	// recorded when Scored is true, since failed generations produce no
	// query to score.
	SyntaxScore int
	Scored      bool
}

// Record captures one generation attempt in both the OpenTelemetry
// instruments and the in-memory summary.
func (r *Recorder) Record(ctx context.Context, g Generation) {
	attrs := metric.WithAttributes(
		attribute.String("dialect", g.Dialect.String()),
		attribute.Bool("success", g.Success),
	)

	if r.countCounter != nil {
		r.countCounter.Add(ctx, 1, attrs)
	}
	if r.durationHistogram != nil {
		r.durationHistogram.Record(ctx, float64(g.Duration.Milliseconds()), attrs)
	}
	if r.scoreHistogram != nil && g.Scored {
		r.scoreHistogram.Record(ctx, float64(g.SyntaxScore), attrs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.total++
	if g.Success {
		r.succeeded++
	} else {
		r.failed++
	}

	agg, ok := r.byDialect[g.Dialect]
	if !ok {
		agg = &dialectAggregate{}
		r.byDialect[g.Dialect] = agg
	}
	agg.count++
	agg.totalDuration += g.Duration
	if g.Scored {
		agg.totalScore += g.SyntaxScore
		agg.scored++
	}
}

// Summary returns a snapshot of the aggregates.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		Total:     r.total,
		Succeeded: r.succeeded,
		Failed:    r.failed,
		ByDialect: make(map[dialect.Dialect]DialectStats, len(r.byDialect)),
	}

	dialects := make([]dialect.Dialect, 0, len(r.byDialect))
	for d := range r.byDialect {
		dialects = append(dialects, d)
	}
	sort.Slice(dialects, func(i, j int) bool { return dialects[i] < dialects[j] })

	for _, d := range dialects {
		agg := r.byDialect[d]
		stats := DialectStats{Count: agg.count}
		if agg.count > 0 {
			stats.AvgDurationMillis = float64(agg.totalDuration.Milliseconds()) / float64(agg.count)
		}
		if agg.scored > 0 {
			stats.AvgSyntaxScore = float64(agg.totalScore) / float64(agg.scored)
		}
		s.ByDialect[d] = stats
	}

	return s
}
