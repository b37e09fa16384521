package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Environment variables resolved by NewFromEnv.
const (
	EnvProvider    = "AI_PROVIDER"
	EnvModel       = "AI_MODEL"
	EnvMaxTokens   = "AI_MAX_TOKENS"
	EnvTemperature = "AI_TEMPERATURE"
)

var apiKeyEnv = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// SupportedProviders returns the provider names New accepts. Callers
// enumerate this for defaults, so the ordering is part of the contract.
func SupportedProviders() []string {
	return []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini}
}

// New constructs the adapter selected by cfg.Provider (case-insensitive).
// The API key is checked before dispatch; adapters never see an empty key.
func New(cfg Config) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigError{Message: fmt.Sprintf("API key is required for the %s provider", name)}
	}
	switch name {
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg), nil
	case ProviderGemini:
		return NewGemini(cfg), nil
	default:
		return nil, unknownProviderError(cfg.Provider)
	}
}

// NewFromEnv builds a Config from environment values and hands it to New.
// The lookup function is explicit (pass os.Getenv in production) so tests can
// resolve from a map without touching process state. AI_PROVIDER defaults to
// openai when unset. Malformed numeric overrides are ignored, not validated.
func NewFromEnv(lookup func(string) string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(lookup(EnvProvider)))
	if name == "" {
		name = ProviderOpenAI
	}

	keyVar, ok := apiKeyEnv[name]
	if !ok {
		return nil, unknownProviderError(name)
	}
	apiKey := lookup(keyVar)
	if apiKey == "" {
		return nil, &ConfigError{Message: fmt.Sprintf("API key not found for %s provider", name)}
	}

	cfg := Config{
		Provider: name,
		APIKey:   apiKey,
		Model:    lookup(EnvModel),
	}
	if raw := lookup(EnvMaxTokens); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.MaxTokens = n
			cfg.HasMaxTokens = true
		}
	}
	if raw := lookup(EnvTemperature); raw != "" {
		if t, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.Temperature = t
			cfg.HasTemperature = true
		}
	}

	return New(cfg)
}

// ValidateProvider reports whether cfg yields an adapter whose credentials
// pass a probe. Every failure collapses to false, so a bad key, an unknown
// provider name, and an unreachable network are indistinguishable here.
func ValidateProvider(ctx context.Context, cfg Config) bool {
	p, err := New(cfg)
	if err != nil {
		return false
	}
	return p.ValidateCredentials(ctx)
}

func unknownProviderError(name string) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(
		"Unknown AI provider: %s. Supported providers: %s",
		name, strings.Join(SupportedProviders(), ", "),
	)}
}
