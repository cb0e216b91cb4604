// Package backend talks to the external text-generation services: the
// OpenAI-compatible chat endpoint used by the tutor and the completion
// providers used for learning-path recommendations.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"TraceTutor/internal/config"
)

// Completion is the parsed result of a chat round trip.
type Completion struct {
	Content string
	Usage   map[string]int64
}

// ChatClient sends single-turn chat completions to an OpenAI-compatible endpoint.
type ChatClient struct {
	backend     string
	endpoint    string
	model       string
	temperature float64
	maxTokens   int
	creds       config.CredentialProvider
	httpClient  *http.Client
}

// NewChatClient creates a client for cfg. A zero cfg.Timeout leaves the
// transport default (no client-side deadline).
func NewChatClient(cfg config.ChatConfig, creds config.CredentialProvider) *ChatClient {
	return &ChatClient{
		backend:     cfg.Backend,
		endpoint:    cfg.Endpoint(),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		creds:       creds,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Backend returns the configured backend name.
func (c *ChatClient) Backend() string {
	return c.backend
}

// Chat sends the system instruction and one user message and returns the
// first choice.
func (c *ChatClient) Chat(ctx context.Context, system, user string) (*Completion, error) {
	apiKey, err := c.creds.APIKey(c.backend)
	if err != nil {
		return nil, err
	}

	reqBody := OpenAIRequest{
		Model: c.model,
		Messages: []OpenAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewAPIError(resp.StatusCode, c.endpoint, body)
	}

	return parseChatCompletion(body)
}

func parseChatCompletion(body []byte) (*Completion, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: not JSON", ErrMalformedResponse)
	}

	content := gjson.GetBytes(body, openAIContentPath)
	if !content.Exists() {
		if !gjson.GetBytes(body, "choices").IsArray() {
			return nil, fmt.Errorf("%w: missing choices", ErrMalformedResponse)
		}
		return nil, fmt.Errorf("%w: no choices", ErrEmptyResponse)
	}
	if content.Type != gjson.String {
		return nil, fmt.Errorf("%w: message content is %s", ErrMalformedResponse, content.Type)
	}

	completion := &Completion{Content: content.String()}

	usage := gjson.GetBytes(body, openAIUsagePath)
	if usage.IsObject() {
		completion.Usage = make(map[string]int64)
		usage.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.Number {
				completion.Usage[key.String()] = value.Int()
			}
			return true
		})
	}
	return completion, nil
}
