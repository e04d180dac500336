package answer

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrUnavailable indicates that no generative capability is configured.
var ErrUnavailable = errors.New("answer generator not configured")

const systemPrompt = "You are a helpful assistant providing information about medications and health. " +
	"Always emphasize that your responses are for informational purposes only and not medical advice. " +
	"Be concise and helpful."

// OpenAIGenerator produces answers through the OpenAI chat completions API.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given chat model. Returns
// ErrUnavailable when apiKey is empty so callers can fall back to templated
// answers.
func NewOpenAIGenerator(apiKey, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	if model == "" {
		model = string(openai.ChatModelGPT3_5Turbo)
	}
	return &OpenAIGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Generate answers query using contextText as grounding, with an explicit
// informational-only instruction.
func (g *OpenAIGenerator) Generate(ctx context.Context, query, contextText string) (string, error) {
	prompt := fmt.Sprintf("Based on the following context, answer the question: %q\n\nContext:\n%s\n\n"+
		"Provide a concise, helpful answer while emphasizing this is informational only.", query, contextText)
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(200),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
