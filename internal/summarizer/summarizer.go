package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-processor/internal/gemini"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

const (
	// Placeholder is returned instead of a summary when no backend is configured.
	Placeholder = "Gemini key not configured. Transcript generated with fallback summary."

	systemInstruction = `You are an assistant that summarizes client meetings. Return concise bullet points: decisions, action items, and follow-ups.`

	transcriptPrompt = `Transcript:
%s`
)

func (s *implSummarizer) Available() bool {
	return s.generator != nil
}

// Summarize issues a single generation request and returns the text verbatim.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if !s.Available() {
		s.logger.Warn(ctx, "Summary backend not configured, returning placeholder")
		return Placeholder, nil
	}

	s.logger.Info(ctx, "Summarizing transcript with %s: %d characters", s.model, len(transcript))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	result, err := s.generator.GenerateContent(ctx, s.model, genai.Text(fmt.Sprintf(transcriptPrompt, transcript)), cfg)
	if err != nil {
		return "", model.NewStepError(model.StepSummarize, model.KindInference, fmt.Errorf("generate content: %w", err))
	}

	summary, err := gemini.ResponseText(result)
	if err != nil {
		return "", model.NewStepError(model.StepSummarize, model.KindInference, err)
	}

	s.logger.Info(ctx, "Summary completed: %d characters", len(summary))
	return summary, nil
}
