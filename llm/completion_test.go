package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionRequest(t *testing.T) {
	t.Run("with options", func(t *testing.T) {
		req := NewCompletionRequest(
			UserMessage("generate a query"),
			WithModel("llama3.2"),
			WithTemperature(0.2),
			WithMaxTokens(512),
			WithTimeout(30*time.Second),
			WithStopSequences("EXPLANATION:"),
		)

		require.Len(t, req.Messages, 1)
		assert.Equal(t, RoleUser, req.Messages[0].Role)
		assert.Equal(t, "llama3.2", req.Model)
		require.NotNil(t, req.Temperature)
		assert.Equal(t, 0.2, *req.Temperature)
		require.NotNil(t, req.MaxTokens)
		assert.Equal(t, 512, *req.MaxTokens)
		assert.Equal(t, 30*time.Second, req.Timeout)
		assert.Equal(t, []string{"EXPLANATION:"}, req.Stop)
	})

	t.Run("defaults", func(t *testing.T) {
		req := NewCompletionRequest(UserMessage("hunt"))
		assert.Empty(t, req.Model)
		assert.Nil(t, req.Temperature)
		assert.Nil(t, req.MaxTokens)
		assert.Zero(t, req.Timeout)
	})
}

func TestCompletionResponse(t *testing.T) {
	t.Run("has content", func(t *testing.T) {
		resp := &CompletionResponse{Content: "index=security"}
		assert.True(t, resp.HasContent())

		empty := &CompletionResponse{}
		assert.False(t, empty.HasContent())
	})

	t.Run("is complete", func(t *testing.T) {
		assert.True(t, (&CompletionResponse{FinishReason: "stop"}).IsComplete())
		assert.True(t, (&CompletionResponse{}).IsComplete())
		assert.False(t, (&CompletionResponse{FinishReason: "length"}).IsComplete())
	})
}

func TestTokenUsageAdd(t *testing.T) {
	a := TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}
	b := TokenUsage{InputTokens: 1, OutputTokens: 2, TotalTokens: 3}

	sum := a.Add(b)
	assert.Equal(t, TokenUsage{InputTokens: 11, OutputTokens: 22, TotalTokens: 33}, sum)
}
