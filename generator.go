package huntgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/huntgen/dialect"
	"github.com/zero-day-ai/huntgen/extract"
	"github.com/zero-day-ai/huntgen/llm"
	"github.com/zero-day-ai/huntgen/metrics"
	"github.com/zero-day-ai/huntgen/prompt"
	"github.com/zero-day-ai/huntgen/technique"
	"github.com/zero-day-ai/huntgen/validate"
)

// State identifies where a generation call is in its lifecycle. States are
// recorded in logs and spans for debugging; a call either reaches StateDone
// or stops at StateFailed.
type State string

const (
	StateIdle            State = "idle"
	StatePromptBuilt     State = "prompt_built"
	StateCompleting      State = "completing"
	StateExtracted       State = "extracted"
	StateValidated       State = "validated"
	StateTechniqueMapped State = "technique_mapped"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// GeneratedQuery is one generated hunting query. Immutable after creation;
// owned by the caller.
type GeneratedQuery struct {
	// ID uniquely identifies this generation.
	ID string `json:"id"`

	// Dialect is the target query language.
	Dialect dialect.Dialect `json:"dialect"`

	// QueryText is the extracted query.
	QueryText string `json:"query_text"`

	// Explanation describes the query, or the extractor's fallback note.
	Explanation string `json:"explanation"`

	// Source records which extraction pass produced the query.
	Source extract.Source `json:"source"`

	// Duration is the wall-clock time of the whole generation call.
	Duration time.Duration `json:"duration"`
}

// GenerationResult is the outcome of one successful generation call. The
// query is always present and always validated; Technique is nil unless
// mapping was requested and found a match.
type GenerationResult struct {
	Query      GeneratedQuery            `json:"query"`
	Validation validate.ValidationResult `json:"validation"`
	Technique  *technique.Match          `json:"technique,omitempty"`
}

// GenerateOptions controls one generation call.
type GenerateOptions struct {
	// IncludeMitre maps the description to an attack technique and, when a
	// match is found, feeds the technique's detection guidance into the
	// prompt as extra context. Mapping never fails the call; no match
	// yields a nil Technique in the result.
	IncludeMitre bool
}

// Generator composes the prompt builder, completion client, extractor,
// validator, and technique mapper into one request/response cycle. It owns
// the retry policy for the completion call.
//
// Generators are stateless across calls and safe for concurrent use; each
// call carries its own timeout and its own single retry.
type Generator struct {
	client    llm.Client
	prompts   *prompt.Builder
	validator *validate.Validator
	rules     *validate.RuleEngine
	mapper    *technique.Mapper
	recorder  *metrics.Recorder
	tokens    llm.TokenTracker
	logger    *slog.Logger
	tracer    trace.Tracer
	timeout   time.Duration
	newID     func() string
}

// NewGenerator creates a Generator backed by the given completion client.
func NewGenerator(client llm.Client, opts ...GeneratorOption) (*Generator, error) {
	if client == nil {
		return nil, NewInternalError("NewGenerator", errors.New("completion client is required"))
	}

	cfg := defaultGeneratorConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	prompts, err := prompt.NewBuilder()
	if err != nil {
		return nil, NewInternalError("NewGenerator", err)
	}

	validator, err := validate.NewValidator()
	if err != nil {
		return nil, NewInternalError("NewGenerator", err)
	}

	mapper := cfg.mapper
	if mapper == nil {
		mapper = technique.NewMapper(technique.DefaultCatalog())
	}

	recorder := cfg.recorder
	if recorder == nil {
		recorder, err = metrics.NewRecorder(nil)
		if err != nil {
			return nil, NewInternalError("NewGenerator", err)
		}
	}

	return &Generator{
		client:    client,
		prompts:   prompts,
		validator: validator,
		rules:     cfg.rules,
		mapper:    mapper,
		recorder:  recorder,
		tokens:    llm.NewTokenTracker(),
		logger:    cfg.logger,
		tracer:    cfg.tracer,
		timeout:   cfg.timeout,
		newID:     uuid.NewString,
	}, nil
}

// Mapper returns the technique mapper so callers can run standalone
// description-to-technique lookups.
func (g *Generator) Mapper() *technique.Mapper {
	return g.mapper
}

// Metrics returns the generation metrics recorder.
func (g *Generator) Metrics() *metrics.Recorder {
	return g.recorder
}

// Tokens returns the token tracker, bucketed by dialect.
func (g *Generator) Tokens() llm.TokenTracker {
	return g.tokens
}

// Generate runs one full generation cycle: build the prompt, call the
// completion service (retrying once on transient failure), extract the
// query, validate it, and optionally map the description to a technique.
//
// The returned query has always passed through exactly one validation,
// even when it came from the extractor's whole-text fallback. Invalidity is
// reported in the result, never as an error.
//
// Failure modes: ErrInvalidInput when the description is blank,
// ErrGenerationFailed when the completion service fails twice, or the
// context's error when the caller cancels.
func (g *Generator) Generate(ctx context.Context, description string, d dialect.Dialect, opts GenerateOptions) (*GenerationResult, error) {
	start := time.Now()
	state := StateIdle

	var span trace.Span
	if g.tracer != nil {
		ctx, span = g.tracer.Start(ctx, "huntgen.generate")
		defer span.End()
		span.SetAttributes(attribute.String("dialect", d.String()))
	}

	fail := func(err error) (*GenerationResult, error) {
		state = StateFailed
		g.logger.Error("generation failed",
			"dialect", d.String(),
			"state", string(state),
			"error", err)
		if span != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
		g.recorder.Record(ctx, metrics.Generation{
			Dialect:  d,
			Success:  false,
			Duration: time.Since(start),
		})
		return nil, err
	}

	if !d.IsValid() {
		return fail(NewValidationError("Generator.Generate",
			fmt.Errorf("%w: unsupported dialect %q", ErrInvalidInput, string(d))))
	}

	// Technique mapping runs up front when requested so the match can feed
	// the prompt. It cannot fail the call; no match means no hint.
	var match *technique.Match
	if opts.IncludeMitre {
		m, err := g.mapper.Map(description)
		if err == nil {
			match = &m
		} else if !errors.Is(err, technique.ErrNoMatch) {
			return fail(NewInternalError("Generator.Generate", err))
		}
	}

	promptText, err := g.buildPrompt(description, d, match)
	if err != nil {
		return fail(err)
	}
	state = StatePromptBuilt
	g.logger.Debug("prompt built", "dialect", d.String(), "state", string(state))

	state = StateCompleting
	resp, err := g.complete(ctx, promptText)
	if err != nil {
		return fail(err)
	}
	g.tokens.Add(d.String(), resp.Usage)

	// The caller may have abandoned the call while the model was working;
	// do not spend extraction and validation work on a result that will
	// never be delivered.
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	extracted := extract.Extract(resp.Content, d)
	state = StateExtracted
	g.logger.Debug("completion extracted",
		"dialect", d.String(),
		"state", string(state),
		"source", string(extracted.Source))

	validation := g.validator.Validate(extracted.QueryText, d)
	if g.rules != nil {
		validation = g.rules.Apply(validation, extracted.QueryText, d)
	}
	state = StateValidated
	if match != nil {
		state = StateTechniqueMapped
	}

	duration := time.Since(start)
	result := &GenerationResult{
		Query: GeneratedQuery{
			ID:          g.newID(),
			Dialect:     d,
			QueryText:   extracted.QueryText,
			Explanation: extracted.Explanation,
			Source:      extracted.Source,
			Duration:    duration,
		},
		Validation: validation,
		Technique:  match,
	}

	state = StateDone
	g.logger.Info("query generated",
		"id", result.Query.ID,
		"dialect", d.String(),
		"state", string(state),
		"valid", validation.IsValid,
		"syntax_score", validation.SyntaxScore,
		"duration_ms", duration.Milliseconds())

	if span != nil {
		span.SetAttributes(
			attribute.String("query.id", result.Query.ID),
			attribute.Bool("query.valid", validation.IsValid),
			attribute.Int("query.syntax_score", validation.SyntaxScore),
			attribute.String("extract.source", string(extracted.Source)),
		)
		span.SetStatus(codes.Ok, "")
	}

	g.recorder.Record(ctx, metrics.Generation{
		Dialect:     d,
		Success:     true,
		Duration:    duration,
		SyntaxScore: validation.SyntaxScore,
		Scored:      true,
	})

	return result, nil
}

// buildPrompt renders the prompt, translating an empty description into
// ErrInvalidInput before any model call is attempted.
func (g *Generator) buildPrompt(description string, d dialect.Dialect, match *technique.Match) (string, error) {
	var promptOpts prompt.Options
	if match != nil {
		promptOpts.Hint = &prompt.Hint{
			TechniqueID:   match.Technique.ID,
			TechniqueName: match.Technique.Name,
			Detection:     match.Technique.Detection,
		}
	}

	text, err := g.prompts.Build(d, description, promptOpts)
	if err != nil {
		if errors.Is(err, prompt.ErrEmptyDescription) {
			return "", NewValidationError("Generator.Generate",
				fmt.Errorf("%w: %w", ErrInvalidInput, err))
		}
		return "", NewInternalError("Generator.Generate", err)
	}
	return text, nil
}

// complete issues the completion request, retrying exactly once when the
// failure is transient. Context cancellation is never retried.
func (g *Generator) complete(ctx context.Context, promptText string) (*llm.CompletionResponse, error) {
	req := llm.NewCompletionRequest(
		llm.UserMessage(promptText),
		llm.WithTimeout(g.timeout),
	)

	resp, err := g.client.Complete(ctx, req)
	if err != nil && llm.IsRetryable(err) && ctx.Err() == nil {
		g.logger.Warn("completion failed, retrying once", "error", err)
		resp, err = g.client.Complete(ctx, req)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, NewGenerationError("Generator.Generate",
			fmt.Errorf("%w: %w", ErrGenerationFailed, err))
	}

	return resp, nil
}
