package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicName = "Anthropic"

const defaultAnthropicModel = "claude-3-opus-20240229"

// The messages API requires max_tokens; used when neither the request nor the
// config supplies one.
const anthropicMaxTokensCap = 4096

type Anthropic struct {
	client anthropic.Client
	cfg    Config
}

func NewAnthropic(cfg Config) *Anthropic {
	// Retry policy belongs to callers, not this layer.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
	}
}

func (a *Anthropic) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	maxTokens := anthropicMaxTokensCap
	if n, ok := effectiveMaxTokens(req, a.cfg); ok {
		maxTokens = n
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model()),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: req.Prompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Content)),
		},
	}
	if t, ok := effectiveTemperature(req, a.cfg); ok {
		params.Temperature = anthropic.Float(t)
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapAnthropicError(err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, &VendorError{Provider: anthropicName, StatusCode: http.StatusOK, Message: "no text content in response"}
	}

	return &AnalysisResponse{
		Result:     text,
		TokensUsed: int(message.Usage.InputTokens + message.Usage.OutputTokens),
		Model:      string(message.Model),
		Provider:   anthropicName,
	}, nil
}

func (a *Anthropic) ValidateCredentials(ctx context.Context) bool {
	_, err := a.client.Models.List(ctx, anthropic.ModelListParams{})
	return err == nil
}

func (a *Anthropic) ProviderName() string {
	return anthropicName
}

func (a *Anthropic) AvailableModels() []string {
	return []string{"claude-3-opus-20240229", "claude-3-sonnet-20240229", "claude-3-haiku-20240307"}
}

func (a *Anthropic) model() string {
	if a.cfg.Model != "" {
		return a.cfg.Model
	}
	return defaultAnthropicModel
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &VendorError{
			Provider:   anthropicName,
			StatusCode: apiErr.StatusCode,
			Message:    anthropicErrorMessage(apiErr),
		}
	}
	return &TransportError{Provider: anthropicName, Err: err}
}

// The SDK keeps the error envelope as raw JSON; pull error.message out of it
// and fall back to the status text when the body is not the documented shape.
func anthropicErrorMessage(apiErr *anthropic.Error) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if raw := apiErr.RawJSON(); raw != "" {
		if json.Unmarshal([]byte(raw), &envelope) == nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	return http.StatusText(apiErr.StatusCode)
}
