// Package gemini holds the pieces of the genai client shared by the
// transcription and summarization adapters.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Generator is the subset of *genai.Models the adapters call.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// DefaultModel serves both transcription and summarization when none is configured.
const DefaultModel = "gemini-2.5-flash"

var ErrEmptyResponse = errors.New("empty response from Gemini")

// NewGenerator returns nil when apiKey is empty.
func NewGenerator(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client.Models, nil
}

// ResponseText concatenates the text parts of the first candidate. A candidate
// without text yields "", which is what a silent recording transcribes to.
func ResponseText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
