package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator turns a prompt into text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// GeminiGenerator implements TextGenerator with the Gemini API. The client
// is shared across requests and must be closed on shutdown.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator creates a client for the given API key and model name.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(400)

	return &GeminiGenerator{client: client, model: m}, nil
}

// Generate sends prompt and concatenates the text parts of the first
// candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
