package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Document is an inline attachment sent alongside the prompt.
type Document struct {
	MIMEType string
	Data     []byte
}

// Generator produces model text for a prompt plus attached documents.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string, docs ...Document) (string, error)
}

var ErrEmptyAIResponse = errors.New("model returned no content")

// GeminiGenerator opens a client per call because the key is read from
// settings and may change between requests.
type GeminiGenerator struct {
	Model string
}

func (g *GeminiGenerator) Generate(ctx context.Context, apiKey, prompt string, docs ...Document) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	modelName := g.Model
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}
	model := client.GenerativeModel(modelName)

	parts := make([]genai.Part, 0, len(docs)+1)
	for _, d := range docs {
		parts = append(parts, genai.Blob{MIMEType: d.MIMEType, Data: d.Data})
	}
	parts = append(parts, genai.Text(prompt))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyAIResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
