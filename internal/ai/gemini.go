package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const geminiName = "Google Gemini"

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
const defaultGeminiModel = "gemini-1.5-pro"

// Gemini has no SDK in our stack; the adapter speaks the generativelanguage
// REST protocol directly. The API key travels as a query parameter, not a
// header.
type Gemini struct {
	httpClient *http.Client
	baseURL    string
	cfg        Config
}

func NewGemini(cfg Config) *Gemini {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &Gemini{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cfg:        cfg,
	}
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *Gemini) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt + "\n\n" + req.Content}}},
		},
	}
	genCfg := &geminiGenerationConfig{}
	if n, ok := effectiveMaxTokens(req, g.cfg); ok {
		genCfg.MaxOutputTokens = &n
	}
	if t, ok := effectiveTemperature(req, g.cfg); ok {
		genCfg.Temperature = &t
	}
	if genCfg.MaxOutputTokens != nil || genCfg.Temperature != nil {
		payload.GenerationConfig = genCfg
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, g.model(), url.QueryEscape(g.cfg.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Provider: geminiName, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: geminiName, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &VendorError{
			Provider:   geminiName,
			StatusCode: resp.StatusCode,
			Message:    geminiErrorMessage(respBody, resp.StatusCode),
		}
	}

	var decoded geminiResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, &VendorError{Provider: geminiName, StatusCode: resp.StatusCode, Message: "malformed response body"}
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, &VendorError{Provider: geminiName, StatusCode: resp.StatusCode, Message: "no candidates in response"}
	}

	model := decoded.ModelVersion
	if model == "" {
		model = g.model()
	}

	return &AnalysisResponse{
		Result:     decoded.Candidates[0].Content.Parts[0].Text,
		TokensUsed: decoded.UsageMetadata.TotalTokenCount,
		Model:      model,
		Provider:   geminiName,
	}, nil
}

func (g *Gemini) ValidateCredentials(ctx context.Context) bool {
	endpoint := fmt.Sprintf("%s/v1beta/models?key=%s", g.baseURL, url.QueryEscape(g.cfg.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (g *Gemini) ProviderName() string {
	return geminiName
}

func (g *Gemini) AvailableModels() []string {
	return []string{"gemini-1.5-pro", "gemini-1.5-flash", "gemini-1.0-pro"}
}

func (g *Gemini) model() string {
	if g.cfg.Model != "" {
		return g.cfg.Model
	}
	return defaultGeminiModel
}

func geminiErrorMessage(body []byte, statusCode int) string {
	var decoded geminiErrorResponse
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	return http.StatusText(statusCode)
}
