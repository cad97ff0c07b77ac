package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageIsValid(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		want    bool
	}{
		{"user message", Message{Role: RoleUser, Content: "find brute force"}, true},
		{"system message", Message{Role: RoleSystem, Content: "you are an analyst"}, true},
		{"assistant message", Message{Role: RoleAssistant, Content: "QUERY: ..."}, true},
		{"empty content", Message{Role: RoleUser}, false},
		{"unknown role", Message{Role: Role("tool"), Content: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.message.IsValid())
		})
	}
}

func TestUserMessage(t *testing.T) {
	msgs := UserMessage("hunt for powershell abuse")
	assert.Len(t, msgs, 1)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "hunt for powershell abuse", msgs[0].Content)
}
