package huntgen

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/huntgen/metrics"
	"github.com/zero-day-ai/huntgen/technique"
	"github.com/zero-day-ai/huntgen/validate"
)

// GeneratorOption configures a Generator.
type GeneratorOption func(*generatorConfig)

// generatorConfig holds configuration for a Generator instance.
type generatorConfig struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	mapper   *technique.Mapper
	recorder *metrics.Recorder
	rules    *validate.RuleEngine
	timeout  time.Duration
}

// defaultCompletionTimeout bounds each completion attempt. Local model
// servers routinely take tens of seconds on first load.
const defaultCompletionTimeout = 60 * time.Second

func defaultGeneratorConfig() *generatorConfig {
	return &generatorConfig{
		logger:  slog.Default(),
		timeout: defaultCompletionTimeout,
	}
}

// WithLogger sets a custom logger for the generator.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(c *generatorConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing.
// Each Generate call becomes one span carrying the dialect, validation
// outcome, and extraction source.
func WithTracer(tracer trace.Tracer) GeneratorOption {
	return func(c *generatorConfig) {
		c.tracer = tracer
	}
}

// WithMapper sets the technique mapper. If not provided, a mapper over the
// built-in catalog is used.
func WithMapper(mapper *technique.Mapper) GeneratorOption {
	return func(c *generatorConfig) {
		c.mapper = mapper
	}
}

// WithMetrics sets the metrics recorder. If not provided, a recorder
// without OpenTelemetry export is created.
func WithMetrics(recorder *metrics.Recorder) GeneratorOption {
	return func(c *generatorConfig) {
		c.recorder = recorder
	}
}

// WithCustomRules adds an operator-supplied rule engine that runs after the
// built-in validation rules on every generated query.
func WithCustomRules(rules *validate.RuleEngine) GeneratorOption {
	return func(c *generatorConfig) {
		c.rules = rules
	}
}

// WithCompletionTimeout bounds each completion attempt. The retry gets the
// same timeout as the first attempt.
func WithCompletionTimeout(d time.Duration) GeneratorOption {
	return func(c *generatorConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}
