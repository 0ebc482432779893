package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loan-agent-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: llm.RoleAssistant, Content: "ok"},
			Done:    true,
		})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "llama3")
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "hello"},
		{Role: llm.RoleModel, Content: "hi there"},
		{Role: llm.RoleAssistant, Content: "still here"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	require.Len(t, got.Messages, 3)
	assert.Equal(t, llm.RoleUser, got.Messages[0].Role)
	assert.Equal(t, llm.RoleAssistant, got.Messages[1].Role)
	assert.Equal(t, llm.RoleAssistant, got.Messages[2].Role)
}

func TestGenerateSendsSingleUserMessage(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: llm.RoleAssistant, Content: "answer"},
			Done:    true,
		})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "llama3")
	reply, err := p.Generate(context.Background(), "what is the rate?")
	require.NoError(t, err)
	assert.Equal(t, "answer", reply)

	require.Len(t, got.Messages, 1)
	assert.Equal(t, llm.RoleUser, got.Messages[0].Role)
	assert.Equal(t, "what is the rate?", got.Messages[0].Content)
}
