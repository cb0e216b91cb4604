package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TraceTutor/internal/config"
)

func TestNewCompleter(t *testing.T) {
	ctx := context.Background()

	c, err := NewCompleter(ctx, config.RecommendConfig{Provider: config.ProviderDemo}, config.StaticCredentials{})
	require.NoError(t, err)
	assert.IsType(t, &DemoCompleter{}, c)

	c, err = NewCompleter(ctx, config.RecommendConfig{Provider: config.ProviderOllama}, config.StaticCredentials{})
	require.NoError(t, err)
	require.IsType(t, &OllamaCompleter{}, c)
	assert.Equal(t, DefaultOllamaModel, c.(*OllamaCompleter).model)

	c, err = NewCompleter(ctx, config.RecommendConfig{Provider: config.ProviderAnthropic},
		config.StaticCredentials{config.ProviderAnthropic: "k"})
	require.NoError(t, err)
	require.IsType(t, &AnthropicCompleter{}, c)
	assert.Equal(t, DefaultAnthropicModel, c.(*AnthropicCompleter).model)

	_, err = NewCompleter(ctx, config.RecommendConfig{Provider: config.ProviderAnthropic}, config.StaticCredentials{})
	assert.ErrorIs(t, err, config.ErrMissingCredential)

	_, err = NewCompleter(ctx, config.RecommendConfig{Provider: config.ProviderGemini}, config.StaticCredentials{})
	assert.ErrorIs(t, err, config.ErrMissingCredential)

	_, err = NewCompleter(ctx, config.RecommendConfig{Provider: "bogus"}, config.StaticCredentials{})
	assert.Error(t, err)
}

func TestAnthropicCompleter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req AnthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "learn pcb", req.Messages[0].Content)

		w.Write([]byte(`{"content":[{"type":"text","text":"Start with a 555 timer."}]}`))
	}))
	defer srv.Close()

	a := &AnthropicCompleter{apiKey: "k", baseURL: srv.URL, model: "test-model", httpClient: srv.Client()}
	got, err := a.Complete(context.Background(), "learn pcb")
	require.NoError(t, err)
	assert.Equal(t, "Start with a 555 timer.", got)
}

func TestAnthropicCompleter_Errors(t *testing.T) {
	status := http.StatusOK
	body := `{"content":[]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	a := &AnthropicCompleter{apiKey: "k", baseURL: srv.URL, model: "m", httpClient: srv.Client()}

	_, err := a.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	status, body = http.StatusUnauthorized, `{"error":"bad key"}`
	_, err = a.Complete(context.Background(), "p")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestOllamaCompleter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req OllamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "llama3:latest", req.Model)

		w.Write([]byte(`{"model":"llama3:latest","message":{"role":"assistant","content":"Learn ground planes."},"done":true}`))
	}))
	defer srv.Close()

	o := &OllamaCompleter{baseURL: srv.URL, model: DefaultOllamaModel, httpClient: srv.Client()}
	got, err := o.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Learn ground planes.", got)
}

func TestDemoCompleter(t *testing.T) {
	d := NewDemoCompleter(0)
	got, err := d.Complete(context.Background(), "anything")
	require.NoError(t, err)
	assert.Contains(t, demoTips, got)
}

func TestDemoCompleter_HonoursCancellation(t *testing.T) {
	d := NewDemoCompleter(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Complete(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)
}
