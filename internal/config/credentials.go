package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrMissingCredential is returned when no API key is configured for a provider.
var ErrMissingCredential = errors.New("missing credential")

// CredentialProvider resolves bearer credentials for outbound providers.
type CredentialProvider interface {
	APIKey(provider string) (string, error)
}

// credentialEnv lists the environment variables consulted per provider, in
// order. VITE_GROQ_API_KEY keeps .env files written for the old web build working.
var credentialEnv = map[string][]string{
	BackendGroq:       {"GROQ_API_KEY", "VITE_GROQ_API_KEY"},
	BackendOpenAI:     {"OPENAI_API_KEY"},
	BackendGrok:       {"GROK_API_KEY", "XAI_API_KEY"},
	ProviderAnthropic: {"ANTHROPIC_API_KEY"},
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// EnvCredentials reads API keys from the process environment.
type EnvCredentials struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

// APIKey returns the first non-empty variable registered for provider.
func (e EnvCredentials) APIKey(provider string) (string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	names, ok := credentialEnv[provider]
	if !ok {
		return "", fmt.Errorf("%w: no credential source for %q", ErrMissingCredential, provider)
	}
	for _, name := range names {
		if v, ok := lookup(name); ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s not set", ErrMissingCredential, names[0])
}

// StaticCredentials serves keys from a fixed map. Useful in tests.
type StaticCredentials map[string]string

// APIKey implements CredentialProvider.
func (s StaticCredentials) APIKey(provider string) (string, error) {
	if v := s[provider]; v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrMissingCredential, provider)
}
