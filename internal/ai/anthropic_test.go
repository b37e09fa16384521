package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const anthropicSuccessBody = `{
	"id": "msg_123",
	"type": "message",
	"role": "assistant",
	"model": "claude-3-opus-20240229",
	"content": [{"type": "text", "text": "Analysis result"}],
	"stop_reason": "end_turn",
	"stop_sequence": null,
	"usage": {"input_tokens": 60, "output_tokens": 40}
}`

func TestAnthropicAnalyze(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicSuccessBody))
	}))
	defer server.Close()

	a := NewAnthropic(Config{Provider: "anthropic", APIKey: "test-key", BaseURL: server.URL})
	resp, err := a.Analyze(context.Background(), NewRequest("some readme", "rate this"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if resp.Result != "Analysis result" {
		t.Errorf("Result: got %q", resp.Result)
	}
	if resp.TokensUsed != 100 {
		t.Errorf("TokensUsed: got %d, want input+output=100", resp.TokensUsed)
	}
	if resp.Model != "claude-3-opus-20240229" {
		t.Errorf("Model: got %q", resp.Model)
	}
	if resp.Provider != "Anthropic" {
		t.Errorf("Provider: got %q", resp.Provider)
	}

	if gotKey != "test-key" {
		t.Errorf("x-api-key header: got %q", gotKey)
	}
	if gotBody["model"] != "claude-3-opus-20240229" {
		t.Errorf("model field: got %v", gotBody["model"])
	}
	if _, ok := gotBody["temperature"]; ok {
		t.Error("temperature should be absent when not supplied")
	}
}

func TestAnthropicAnalyzeSendsOptions(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicSuccessBody))
	}))
	defer server.Close()

	a := NewAnthropic(Config{Provider: "anthropic", APIKey: "test-key", BaseURL: server.URL})
	req := NewRequest("content", "prompt").WithMaxTokens(500).WithTemperature(0.5)
	if _, err := a.Analyze(context.Background(), req); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if gotBody["max_tokens"] != float64(500) {
		t.Errorf("max_tokens: got %v, want 500", gotBody["max_tokens"])
	}
	if gotBody["temperature"] != 0.5 {
		t.Errorf("temperature: got %v, want 0.5", gotBody["temperature"])
	}
}

func TestAnthropicAnalyzeVendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "Invalid API key"}}`))
	}))
	defer server.Close()

	a := NewAnthropic(Config{Provider: "anthropic", APIKey: "bad-key", BaseURL: server.URL})
	_, err := a.Analyze(context.Background(), NewRequest("content", "prompt"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Anthropic analysis failed") {
		t.Errorf("error message: got %q", err.Error())
	}
	var vendorErr *VendorError
	if !errors.As(err, &vendorErr) {
		t.Fatalf("expected *VendorError, got %T", err)
	}
	if vendorErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode: got %d", vendorErr.StatusCode)
	}
}

func TestAnthropicAnalyzeTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	a := NewAnthropic(Config{Provider: "anthropic", APIKey: "test-key", BaseURL: server.URL})
	_, err := a.Analyze(context.Background(), NewRequest("content", "prompt"))
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T (%v)", err, err)
	}
}

func TestAnthropicValidateCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("X-Api-Key") == "good-key" {
			w.Write([]byte(`{"data": [{"id": "claude-3-opus-20240229", "type": "model", "display_name": "Claude 3 Opus", "created_at": "2024-02-29T00:00:00Z"}], "has_more": false, "first_id": null, "last_id": null}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "Invalid API key"}}`))
	}))
	defer server.Close()

	good := NewAnthropic(Config{Provider: "anthropic", APIKey: "good-key", BaseURL: server.URL})
	if !good.ValidateCredentials(context.Background()) {
		t.Error("expected true for accepted key")
	}

	bad := NewAnthropic(Config{Provider: "anthropic", APIKey: "bad-key", BaseURL: server.URL})
	if bad.ValidateCredentials(context.Background()) {
		t.Error("expected false for rejected key")
	}

	server.Close()
	if good.ValidateCredentials(context.Background()) {
		t.Error("expected false on network failure")
	}
}
