package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TraceTutor/internal/config"
)

func newTestChatClient(t *testing.T, handler http.HandlerFunc) *ChatClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default().Chat
	cfg.BaseURL = srv.URL
	return NewChatClient(cfg, config.StaticCredentials{config.BackendGroq: "test-key"})
}

func TestChatClient_SendsSingleTurnRequest(t *testing.T) {
	var got OpenAIRequest
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Use at least 0.5mm..."}}],
			"usage":{"prompt_tokens":12,"completion_tokens":5,"total_tokens":17}}`))
	})

	completion, err := client.Chat(context.Background(), "You are a helpful PCB design tutor.", "What trace width for 2A?")
	require.NoError(t, err)

	assert.Equal(t, "Use at least 0.5mm...", completion.Content)
	assert.Equal(t, int64(17), completion.Usage["total_tokens"])

	assert.Equal(t, "llama3-8b-8192", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, OpenAIMessage{Role: "system", Content: "You are a helpful PCB design tutor."}, got.Messages[0])
	assert.Equal(t, OpenAIMessage{Role: "user", Content: "What trace width for 2A?"}, got.Messages[1])
}

func TestChatClient_NonSuccessStatus(t *testing.T) {
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := client.Chat(context.Background(), "sys", "hi")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "rate limited")
}

func TestChatClient_MissingCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := config.Default().Chat
	cfg.BaseURL = srv.URL
	client := NewChatClient(cfg, config.StaticCredentials{})

	_, err := client.Chat(context.Background(), "sys", "hi")
	assert.ErrorIs(t, err, config.ErrMissingCredential)
	assert.False(t, called)
}

func TestParseChatCompletion(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "first choice", body: `{"choices":[{"message":{"content":"a"}},{"message":{"content":"b"}}]}`, want: "a"},
		{name: "empty string content", body: `{"choices":[{"message":{"content":""}}]}`, want: ""},
		{name: "not json", body: `<html>oops`, wantErr: ErrMalformedResponse},
		{name: "missing choices", body: `{"id":"x"}`, wantErr: ErrMalformedResponse},
		{name: "empty choices", body: `{"choices":[]}`, wantErr: ErrEmptyResponse},
		{name: "no message", body: `{"choices":[{}]}`, wantErr: ErrEmptyResponse},
		{name: "non-string content", body: `{"choices":[{"message":{"content":42}}]}`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChatCompletion([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Content)
			assert.Nil(t, got.Usage)
		})
	}
}
