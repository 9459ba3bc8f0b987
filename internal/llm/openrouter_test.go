package llm

import (
	"context"
	"net/http"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemini-2.0-flash-exp" {
			t.Errorf("model = %q", p.ModelID())
		}
		if p.Name() != ProviderOpenRouter {
			t.Errorf("name = %q, want %q", p.Name(), ProviderOpenRouter)
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("model pass-through", func(t *testing.T) {
		// "gpt-mini" is an OpenAI friendly name; OpenRouter must not map it.
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "gpt-mini"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gpt-mini" {
			t.Errorf("model = %q, want pass-through", p.ModelID())
		}
	})
}

func TestOpenRouterProvider_CustomBaseURL(t *testing.T) {
	var body map[string]any
	server := chatServer(t, `{"ok":true}`, "stop", &body)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "anthropic/claude-3-haiku",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("q")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if body["model"] != "anthropic/claude-3-haiku" {
		t.Fatalf("model not passed through: %v", body["model"])
	}
}

func TestOpenRouterProvider_ErrorsMapLikeOpenAI(t *testing.T) {
	server := errorServer(t, http.StatusTooManyRequests)
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "m", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(context.Background(), Request{Messages: UserMessage("q")}); !IsTransient(err) {
		t.Fatalf("expected a transient error, got %v", err)
	}
}
