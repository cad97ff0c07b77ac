package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClientComplete(t *testing.T) {
	t.Run("successful completion", func(t *testing.T) {
		var gotBody ollamaGenerateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/generate", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			json.NewEncoder(w).Encode(ollamaGenerateResponse{
				Model:           "llama3.2",
				Response:        "QUERY: index=security\nEXPLANATION: searches security index",
				Done:            true,
				PromptEvalCount: 40,
				EvalCount:       25,
			})
		}))
		defer srv.Close()

		client := NewOllamaClient(OllamaOptions{BaseURL: srv.URL})
		resp, err := client.Complete(context.Background(), NewCompletionRequest(UserMessage("find failed logins")))
		require.NoError(t, err)

		assert.False(t, gotBody.Stream)
		assert.Equal(t, "llama3.2", gotBody.Model)
		assert.Contains(t, gotBody.Prompt, "find failed logins")

		assert.True(t, resp.HasContent())
		assert.True(t, resp.IsComplete())
		assert.Equal(t, 65, resp.Usage.TotalTokens)
	})

	t.Run("tuning fields reach the wire options", func(t *testing.T) {
		var gotBody ollamaGenerateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "ok", Done: true})
		}))
		defer srv.Close()

		client := NewOllamaClient(OllamaOptions{BaseURL: srv.URL})
		_, err := client.Complete(context.Background(), NewCompletionRequest(
			UserMessage("x"),
			WithTemperature(0.2),
			WithMaxTokens(512),
			WithStopSequences("EXPLANATION:"),
		))
		require.NoError(t, err)

		require.NotNil(t, gotBody.Options)
		require.NotNil(t, gotBody.Options.Temperature)
		assert.Equal(t, 0.2, *gotBody.Options.Temperature)
		require.NotNil(t, gotBody.Options.NumPredict)
		assert.Equal(t, 512, *gotBody.Options.NumPredict)
		assert.Equal(t, []string{"EXPLANATION:"}, gotBody.Options.Stop)
	})

	t.Run("options omitted when no tuning fields are set", func(t *testing.T) {
		var rawBody map[string]json.RawMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
			json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "ok", Done: true})
		}))
		defer srv.Close()

		client := NewOllamaClient(OllamaOptions{BaseURL: srv.URL})
		_, err := client.Complete(context.Background(), NewCompletionRequest(UserMessage("x")))
		require.NoError(t, err)
		assert.NotContains(t, rawBody, "options")
	})

	t.Run("connection failure is unavailable", func(t *testing.T) {
		client := NewOllamaClient(OllamaOptions{BaseURL: "http://127.0.0.1:1"})
		_, err := client.Complete(context.Background(), NewCompletionRequest(UserMessage("x")))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrModelUnavailable)
		assert.True(t, IsRetryable(err))
	})

	t.Run("non-200 status is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewOllamaClient(OllamaOptions{BaseURL: srv.URL})
		_, err := client.Complete(context.Background(), NewCompletionRequest(UserMessage("x")))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("slow server is timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		client := NewOllamaClient(OllamaOptions{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
		_, err := client.Complete(context.Background(), NewCompletionRequest(UserMessage("x")))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrModelTimeout)
		assert.True(t, IsRetryable(err))
	})

	t.Run("caller cancellation is not retryable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Drain the body so the server starts its background read and
			// can observe the client disconnect; otherwise r.Context() is
			// never cancelled and srv.Close blocks forever.
			io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		client := NewOllamaClient(OllamaOptions{BaseURL: srv.URL})
		_, err := client.Complete(ctx, NewCompletionRequest(UserMessage("x")))
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, IsRetryable(err))
	})
}

func TestOllamaClientDefaults(t *testing.T) {
	client := NewOllamaClient(OllamaOptions{})
	assert.Equal(t, defaultOllamaURL, client.baseURL)
	assert.Equal(t, defaultOllamaModel, client.model)
	assert.Equal(t, defaultOllamaTimeout, client.timeout)
}

func TestFlattenMessages(t *testing.T) {
	prompt := flattenMessages([]Message{
		{Role: RoleSystem, Content: "you are a splunk expert"},
		{Role: RoleUser, Content: "find lateral movement"},
		{Role: RoleUser, Content: ""},
	})
	assert.Equal(t, "you are a splunk expert\n\nfind lateral movement", prompt)
}
