// Package config handles tracetutor.yaml parsing, defaults and environment
// overrides.
//
// Example tracetutor.yaml:
//
//	debug: false
//	log_dir: logs
//	chat:
//	  backend: groq              # groq|openai|grok
//	  model: llama3-8b-8192
//	  temperature: 0.7
//	  max_tokens: 500
//	  timeout: 0s                # 0 leaves the transport default in place
//	recommend:
//	  provider: demo             # demo|anthropic|gemini|ollama
//	server:
//	  addr: ":8080"
//	  session_ttl: 30m
//	ui:
//	  dark_mode: false
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "tracetutor.yaml"

// Chat completion backends (OpenAI-compatible endpoints).
const (
	BackendGroq   = "groq"
	BackendOpenAI = "openai"
	BackendGrok   = "grok"
)

// Recommendation completion providers.
const (
	ProviderDemo      = "demo"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

var defaultBaseURLs = map[string]string{
	BackendGroq:   "https://api.groq.com/openai/v1",
	BackendOpenAI: "https://api.openai.com/v1",
	BackendGrok:   "https://api.x.ai/v1",
}

// Config holds application configuration
type Config struct {
	Debug  bool   `yaml:"debug"`
	LogDir string `yaml:"log_dir"`

	Chat      ChatConfig      `yaml:"chat"`
	Recommend RecommendConfig `yaml:"recommend"`
	Server    ServerConfig    `yaml:"server"`
	UI        UIConfig        `yaml:"ui"`
}

// ChatConfig configures the tutor chat round trip.
type ChatConfig struct {
	Backend     string        `yaml:"backend"`
	BaseURL     string        `yaml:"base_url,omitempty"` // overrides the backend default
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// RecommendConfig configures the learning-path recommendation capability.
type RecommendConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

// ServerConfig configures the web front end.
type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// UIConfig holds presentation defaults shared by both front ends.
type UIConfig struct {
	DarkMode bool `yaml:"dark_mode"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogDir: "logs",
		Chat: ChatConfig{
			Backend:     BackendGroq,
			Model:       "llama3-8b-8192",
			Temperature: 0.7,
			MaxTokens:   500,
		},
		Recommend: RecommendConfig{
			Provider: ProviderDemo,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: 30 * time.Minute,
		},
	}
}

// Endpoint returns the chat-completions URL for the configured backend.
func (c ChatConfig) Endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURLs[c.Backend]
	}
	return strings.TrimRight(base, "/") + "/chat/completions"
}

// Load reads the configuration from path. An empty path means FileName in the
// working directory, and a missing default file yields Default().
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = Default()
		} else {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom parses a configuration file on top of Default().
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err // unwrapped for errors.Is(err, os.ErrNotExist)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvOverrides lets TRACETUTOR_* variables win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRACETUTOR_CHAT_BACKEND"); v != "" {
		c.Chat.Backend = v
	}
	if v := os.Getenv("TRACETUTOR_CHAT_BASE_URL"); v != "" {
		c.Chat.BaseURL = v
	}
	if v := os.Getenv("TRACETUTOR_CHAT_MODEL"); v != "" {
		c.Chat.Model = v
	}
	if v := os.Getenv("TRACETUTOR_RECOMMEND_PROVIDER"); v != "" {
		c.Recommend.Provider = v
	}
	if v := os.Getenv("TRACETUTOR_RECOMMEND_MODEL"); v != "" {
		c.Recommend.Model = v
	}
	if v := os.Getenv("TRACETUTOR_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TRACETUTOR_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("TRACETUTOR_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.Chat.Backend {
	case BackendGroq, BackendOpenAI, BackendGrok:
	default:
		return fmt.Errorf("unknown chat backend: %q (groq|openai|grok)", c.Chat.Backend)
	}
	if c.Chat.Model == "" {
		return fmt.Errorf("chat.model is required")
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return fmt.Errorf("chat.temperature must be between 0 and 2, got %v", c.Chat.Temperature)
	}
	if c.Chat.MaxTokens <= 0 {
		return fmt.Errorf("chat.max_tokens must be positive, got %d", c.Chat.MaxTokens)
	}
	if c.Chat.Timeout < 0 {
		return fmt.Errorf("chat.timeout must not be negative")
	}

	switch c.Recommend.Provider {
	case ProviderDemo, ProviderAnthropic, ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unknown recommend provider: %q (demo|anthropic|gemini|ollama)", c.Recommend.Provider)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive")
	}
	if c.LogDir == "" {
		return fmt.Errorf("log_dir is required")
	}
	return nil
}
