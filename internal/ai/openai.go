package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIName = "OpenAI"

const defaultOpenAIModel = "gpt-4-turbo-preview"

type OpenAI struct {
	client *openai.Client
	cfg    Config
}

func NewOpenAI(cfg Config) *OpenAI {
	// Retry policy belongs to callers, not this layer.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}
}

func (o *OpenAI) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.F(o.model()),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.Prompt),
			openai.UserMessage(req.Content),
		}),
	}
	if n, ok := effectiveMaxTokens(req, o.cfg); ok {
		params.MaxTokens = openai.F(int64(n))
	}
	if t, ok := effectiveTemperature(req, o.cfg); ok {
		params.Temperature = openai.F(t)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &VendorError{Provider: openAIName, StatusCode: http.StatusOK, Message: "empty response"}
	}

	return &AnalysisResponse{
		Result:     resp.Choices[0].Message.Content,
		TokensUsed: int(resp.Usage.TotalTokens),
		Model:      resp.Model,
		Provider:   openAIName,
	}, nil
}

func (o *OpenAI) ValidateCredentials(ctx context.Context) bool {
	_, err := o.client.Models.List(ctx)
	return err == nil
}

func (o *OpenAI) ProviderName() string {
	return openAIName
}

func (o *OpenAI) AvailableModels() []string {
	return []string{"gpt-4-turbo-preview", "gpt-4", "gpt-3.5-turbo"}
}

func (o *OpenAI) model() string {
	if o.cfg.Model != "" {
		return o.cfg.Model
	}
	return defaultOpenAIModel
}

// mapOpenAIError normalizes SDK errors: a parsed API error becomes a
// *VendorError, anything else (DNS, connection, deadline) a *TransportError.
func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return &VendorError{Provider: openAIName, StatusCode: apiErr.StatusCode, Message: msg}
	}
	return &TransportError{Provider: openAIName, Err: err}
}
