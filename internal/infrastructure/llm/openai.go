package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"NewsThreader/internal/config"
	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

// OpenAIComposer implements ports.Composer against any OpenAI-compatible
// chat completion API (Groq by default) using forced tool calls.
type OpenAIComposer struct {
	client      *openai.Client
	model       string
	temperature float32
}

var _ ports.Composer = (*OpenAIComposer)(nil)

// NewOpenAIComposer builds a client from configuration.
func NewOpenAIComposer(cfg config.LLMConfig) *OpenAIComposer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: 90 * time.Second}

	return &OpenAIComposer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

var stringList = jsonschema.Definition{
	Type:  jsonschema.Array,
	Items: &jsonschema.Definition{Type: jsonschema.String},
}

// GenerateTopics asks the model for count topics related to keyword.
func (c *OpenAIComposer) GenerateTopics(ctx context.Context, keyword string, count int) ([]string, error) {
	tool := openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        topicsTool,
			Description: "Collect news articles about a list of topics on the internet.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"topics": withDescription(stringList, "The list of topics"),
				},
				Required: []string{"topics"},
			},
		},
	}

	var args topicsArgs
	if err := c.callTool(ctx, topicsSystemPrompt(count), topicsUserPrompt(keyword, count), tool, &args); err != nil {
		return nil, err
	}
	return args.Topics, nil
}

// ComposeThread turns the digest into tweets paired with their sources.
func (c *OpenAIComposer) ComposeThread(ctx context.Context, keyword, digest string) ([]domain.PostUnit, error) {
	tool := openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        threadTool,
			Description: "Write a twitter thread.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"tweets":  withDescription(stringList, "The list of tweets to post"),
					"sources": withDescription(stringList, "The list of 'https://tinyurl.com/' source URLs for each tweet"),
				},
				Required: []string{"tweets", "sources"},
			},
		},
	}

	var args threadArgs
	if err := c.callTool(ctx, threadSystemPrompt(keyword), threadUserPrompt(digest), tool, &args); err != nil {
		return nil, err
	}
	return domain.PairPosts(args.Tweets, args.Sources), nil
}

func (c *OpenAIComposer) callTool(ctx context.Context, system, user string, tool openai.Tool, out any) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("openai composer is nil")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Tools: []openai.Tool{tool},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: tool.Function.Name},
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion %s: %w", tool.Function.Name, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion %s: no choices", tool.Function.Name)
	}

	msg := resp.Choices[0].Message
	for _, call := range msg.ToolCalls {
		if call.Function.Name == tool.Function.Name {
			return decodeJSON(call.Function.Arguments, out)
		}
	}
	// Some OpenAI-compatible hosts answer inline instead of calling the tool.
	if strings.TrimSpace(msg.Content) != "" {
		return decodeJSON(msg.Content, out)
	}
	return fmt.Errorf("chat completion %s: model did not call the tool", tool.Function.Name)
}

func withDescription(def jsonschema.Definition, description string) jsonschema.Definition {
	def.Description = description
	return def
}
