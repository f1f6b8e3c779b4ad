package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"

	"NewsThreader/internal/config"
)

func TestNewGeminiComposerRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGeminiComposer(context.Background(), config.LLMConfig{Provider: "gemini"}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestGeminiComposeThread(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"tweets\":[\"Chips are back\"],\"sources\":[\"https://tinyurl.com/aaaaaaaa\"]}"}]}}]}`))
	}))
	defer srv.Close()

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  srv.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	if err != nil {
		t.Fatalf("genai.NewClient: %v", err)
	}
	g := &GeminiComposer{client: client, model: "gemini-test"}

	posts, err := g.ComposeThread(context.Background(), "AI", "NEWS 1 TOPIC: AI\n")
	if err != nil {
		t.Fatalf("ComposeThread returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].Text != "Chips are back" || posts[0].SourceURL != "https://tinyurl.com/aaaaaaaa" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}
