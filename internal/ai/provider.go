package ai

import "context"

// Provider is the vendor-agnostic capability contract. Each vendor adapter
// implements it over its own wire protocol; callers never see vendor shapes.
type Provider interface {
	// Analyze sends content plus an instruction prompt to the vendor and
	// returns the generated text. Non-2xx responses surface as *VendorError,
	// network failures as *TransportError.
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)

	// ValidateCredentials probes the vendor with a minimal authenticated
	// request. It never returns an error: any failure, including a network
	// one, maps to false.
	ValidateCredentials(ctx context.Context) bool

	// ProviderName is the canonical display name, e.g. "OpenAI".
	ProviderName() string

	// AvailableModels is a static, vendor-curated list. It is documentation,
	// not a live query.
	AvailableModels() []string
}

type AnalysisRequest struct {
	Content string
	Prompt  string

	MaxTokens      int
	Temperature    float64
	HasMaxTokens   bool
	HasTemperature bool
}

func NewRequest(content, prompt string) AnalysisRequest {
	return AnalysisRequest{Content: content, Prompt: prompt}
}

func (r AnalysisRequest) WithMaxTokens(n int) AnalysisRequest {
	r.MaxTokens = n
	r.HasMaxTokens = true
	return r
}

func (r AnalysisRequest) WithTemperature(t float64) AnalysisRequest {
	r.Temperature = t
	r.HasTemperature = true
	return r
}

type AnalysisResponse struct {
	// Result is the raw text the vendor generated. It may be JSON when the
	// prompt asked for it, but nothing here guarantees that.
	Result     string
	TokensUsed int
	Model      string
	// Provider is always the canonical adapter name, never taken from the
	// vendor payload.
	Provider string
}

// Config selects and parameterizes an adapter. BaseURL overrides the vendor
// endpoint, which tests use to point adapters at local servers.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string

	MaxTokens      int
	Temperature    float64
	HasMaxTokens   bool
	HasTemperature bool
}

// Request options win over config defaults; when neither is supplied the
// vendor's own defaults apply and the field stays off the wire.
func effectiveMaxTokens(req AnalysisRequest, cfg Config) (int, bool) {
	if req.HasMaxTokens {
		return req.MaxTokens, true
	}
	if cfg.HasMaxTokens {
		return cfg.MaxTokens, true
	}
	return 0, false
}

func effectiveTemperature(req AnalysisRequest, cfg Config) (float64, bool) {
	if req.HasTemperature {
		return req.Temperature, true
	}
	if cfg.HasTemperature {
		return cfg.Temperature, true
	}
	return 0, false
}
