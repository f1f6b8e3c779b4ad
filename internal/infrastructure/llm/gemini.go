package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"NewsThreader/internal/config"
	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiComposer implements ports.Composer with Gemini's JSON response mode.
type GeminiComposer struct {
	client      *genai.Client
	model       string
	temperature float32
}

var _ ports.Composer = (*GeminiComposer)(nil)

// NewGeminiComposer creates a Gemini API client.
func NewGeminiComposer(ctx context.Context, cfg config.LLMConfig) (*GeminiComposer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiComposer{client: client, model: model, temperature: cfg.Temperature}, nil
}

// GenerateTopics asks Gemini for count topics related to keyword.
func (g *GeminiComposer) GenerateTopics(ctx context.Context, keyword string, count int) ([]string, error) {
	var args topicsArgs
	if err := g.generate(ctx, topicsSystemPrompt(count)+"\n"+topicsShapeHint, topicsUserPrompt(keyword, count), &args); err != nil {
		return nil, err
	}
	return args.Topics, nil
}

// ComposeThread turns the digest into tweets paired with their sources.
func (g *GeminiComposer) ComposeThread(ctx context.Context, keyword, digest string) ([]domain.PostUnit, error) {
	var args threadArgs
	if err := g.generate(ctx, threadSystemPrompt(keyword)+"\n"+threadShapeHint, threadUserPrompt(digest), &args); err != nil {
		return nil, err
	}
	return domain.PairPosts(args.Tweets, args.Sources), nil
}

func (g *GeminiComposer) generate(ctx context.Context, system, user string, out any) error {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}
	if g.temperature > 0 {
		t := g.temperature
		cfg.Temperature = &t
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), cfg)
	if err != nil {
		return fmt.Errorf("gemini generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fmt.Errorf("no response from gemini")
	}

	var reply string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			reply += part.Text
		}
	}
	return decodeJSON(reply, out)
}
