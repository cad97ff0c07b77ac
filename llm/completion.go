package llm

import "time"

// CompletionRequest represents a request for LLM completion.
type CompletionRequest struct {
	// Messages contains the conversation history.
	Messages []Message

	// Model names the model to use. Empty means the transport's default.
	Model string

	// Temperature controls randomness in the output (0.0 to 2.0).
	// Lower values make output more focused and deterministic.
	Temperature *float64

	// MaxTokens limits the maximum number of tokens to generate.
	MaxTokens *int

	// Timeout bounds a single completion attempt. Zero means the
	// transport's default.
	Timeout time.Duration

	// Stop contains sequences that will stop generation when encountered.
	Stop []string
}

// CompletionResponse represents a response from an LLM completion.
type CompletionResponse struct {
	// Content is the generated text content.
	Content string

	// Model is the model that produced the response, when reported.
	Model string

	// FinishReason indicates why the generation stopped.
	// Common values: "stop", "length", "content_filter"
	FinishReason string

	// Usage contains token usage statistics.
	Usage TokenUsage
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	// InputTokens is the number of tokens in the input/prompt.
	InputTokens int

	// OutputTokens is the number of tokens generated in the response.
	OutputTokens int

	// TotalTokens is the sum of input and output tokens.
	TotalTokens int
}

// CompletionOption is a functional option for configuring CompletionRequest.
type CompletionOption func(*CompletionRequest)

// WithModel sets the model identifier for the completion request.
func WithModel(model string) CompletionOption {
	return func(r *CompletionRequest) {
		r.Model = model
	}
}

// WithTemperature sets the temperature for the completion request.
// Temperature controls randomness (0.0 to 2.0).
func WithTemperature(t float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.Temperature = &t
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) CompletionOption {
	return func(r *CompletionRequest) {
		r.MaxTokens = &n
	}
}

// WithTimeout bounds a single completion attempt.
func WithTimeout(d time.Duration) CompletionOption {
	return func(r *CompletionRequest) {
		r.Timeout = d
	}
}

// WithStopSequences sets sequences that will stop generation.
func WithStopSequences(stops ...string) CompletionOption {
	return func(r *CompletionRequest) {
		r.Stop = stops
	}
}

// ApplyOptions applies a set of options to the completion request.
func (r *CompletionRequest) ApplyOptions(opts ...CompletionOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// NewCompletionRequest creates a new CompletionRequest with the given messages and options.
func NewCompletionRequest(messages []Message, opts ...CompletionOption) *CompletionRequest {
	req := &CompletionRequest{
		Messages: messages,
	}
	req.ApplyOptions(opts...)
	return req
}

// HasContent returns true if the response contains text content.
func (r *CompletionResponse) HasContent() bool {
	return r.Content != ""
}

// IsComplete returns true if generation finished normally (not truncated).
func (r *CompletionResponse) IsComplete() bool {
	return r.FinishReason == "" || r.FinishReason == "stop"
}

// Add combines two TokenUsage instances.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}
