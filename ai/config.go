// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"fmt"
	"strings"
)

// Supported embedding provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds configuration for the embedding provider.
type Config struct {
	// Provider selects the embedding backend: "openai" for OpenAI and
	// OpenAI-compatible APIs, "ollama" for the native Ollama API.
	Provider string

	// Host is the base URL of the embedding service.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible
	// server, "http://localhost:11434" for native Ollama.
	Host string

	// Model is the model identifier to use for text embeddings.
	// Example: "nomic-embed-text", "text-embedding-3-small"
	Model string

	// APIKey authenticates against hosted services. Local services that do
	// not require authentication may leave it empty.
	APIKey string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider selects the embedding backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key used for hosted services.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible embedding service.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Host:     "http://localhost:11434/v1",
		Model:    "nomic-embed-text",
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options.
//
// Example:
//   cfg := NewConfig(
//       WithProvider(ProviderOllama),
//       WithHost("http://localhost:11434"),
//       WithModel("nomic-embed-text"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. OpenAI-style
// hosts gain the /v1 suffix most OpenAI-compatible APIs (Ollama, LocalAI,
// vLLM) require; native Ollama hosts must not carry it, so it is trimmed.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.Host = strings.TrimSuffix(strings.TrimSpace(c.Host), "/")

	switch c.Provider {
	case ProviderOpenAI:
		if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
			c.Host = c.Host + "/v1"
		}
	case ProviderOllama:
		c.Host = strings.TrimSuffix(c.Host, "/v1")
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("ai config: unknown provider %q", c.Provider)
	}
	if c.Host == "" {
		return fmt.Errorf("ai config: Host is required")
	}
	if c.Model == "" {
		return fmt.Errorf("ai config: Model is required")
	}
	return nil
}
