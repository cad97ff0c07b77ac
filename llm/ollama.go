package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaURL     = "http://localhost:11434"
	defaultOllamaModel   = "llama3.2"
	defaultOllamaTimeout = 60 * time.Second
)

// OllamaOptions configures the Ollama completion client.
type OllamaOptions struct {
	// BaseURL is the Ollama server address (e.g., "http://localhost:11434").
	BaseURL string

	// Model is the default model used when a request does not name one.
	Model string

	// Timeout is the default per-attempt timeout applied when a request
	// does not carry one.
	Timeout time.Duration

	// HTTPClient allows injecting a custom transport. Nil uses a client
	// with no global timeout; deadlines come from the request context.
	HTTPClient *http.Client
}

// OllamaClient implements Client against an Ollama-compatible HTTP service
// using the /api/generate endpoint.
type OllamaClient struct {
	baseURL string
	model   string
	timeout time.Duration
	http    *http.Client
}

// NewOllamaClient creates an Ollama completion client with the given options.
func NewOllamaClient(opts OllamaOptions) *OllamaClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultOllamaURL
	}
	if opts.Model == "" {
		opts.Model = defaultOllamaModel
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultOllamaTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	return &OllamaClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
	}
}

// ollamaGenerateRequest is the wire format for POST /api/generate.
type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options *ollamaGenerateOptions `json:"options,omitempty"`
}

// ollamaGenerateOptions carries the per-request model parameters the
// generate endpoint accepts. Omitted fields fall back to the model's
// defaults.
type ollamaGenerateOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  *int     `json:"num_predict,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// generateOptions maps the request's tuning fields onto the wire options.
// Returns nil when none are set so the field is omitted entirely.
func generateOptions(req *CompletionRequest) *ollamaGenerateOptions {
	if req.Temperature == nil && req.MaxTokens == nil && len(req.Stop) == 0 {
		return nil
	}
	return &ollamaGenerateOptions{
		Temperature: req.Temperature,
		NumPredict:  req.MaxTokens,
		Stop:        req.Stop,
	}
}

// ollamaGenerateResponse is the non-streaming response from /api/generate.
type ollamaGenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason,omitempty"`
	PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
	EvalCount       int    `json:"eval_count,omitempty"`
}

// Complete sends a single non-streaming generation request.
// Connectivity failures surface as ErrModelUnavailable, deadline expirations
// as ErrModelTimeout; both are checkable with errors.Is.
func (c *OllamaClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:   model,
		Prompt:  flattenMessages(req.Messages),
		Stream:  false,
		Options: generateOptions(req),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: completion service returned status %d", ErrModelUnavailable, resp.StatusCode)
	}

	var generated ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("%w: failed to decode completion response: %v", ErrModelUnavailable, err)
	}

	finishReason := generated.DoneReason
	if finishReason == "" && generated.Done {
		finishReason = "stop"
	}

	return &CompletionResponse{
		Content:      generated.Response,
		Model:        generated.Model,
		FinishReason: finishReason,
		Usage: TokenUsage{
			InputTokens:  generated.PromptEvalCount,
			OutputTokens: generated.EvalCount,
			TotalTokens:  generated.PromptEvalCount + generated.EvalCount,
		},
	}, nil
}

// flattenMessages joins a conversation into the single prompt string the
// generate endpoint expects. System content precedes user content.
func flattenMessages(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		if m.Content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

// classifyTransportError maps transport failures onto the sentinel errors the
// retry policy understands.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrModelTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
}
