package transcriber

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-processor/internal/gemini"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

const (
	// Placeholder is returned instead of a transcript when no backend is configured.
	Placeholder = "Transcription placeholder. Configure GEMINI_API_KEY for real transcription."

	// AudioFilename labels every upload; recordings are always AAC in an MPEG-4 container.
	AudioFilename = "meeting.m4a"
	audioMIMEType = "audio/mp4"

	transcribePrompt = `Transcribe the attached meeting recording (%s) verbatim.
Return only the spoken text, without timestamps, speaker labels or commentary.`
)

func (t *implTranscriber) Available() bool {
	return t.generator != nil
}

// Transcribe sends the audio to Gemini in one request and returns the text as-is.
func (t *implTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if !t.Available() {
		t.logger.Warn(ctx, "Transcription backend not configured, returning placeholder")
		return Placeholder, nil
	}

	t.logger.Info(ctx, "Starting transcription with %s: %d bytes", t.model, len(audio))

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf(transcribePrompt, AudioFilename)),
			genai.NewPartFromBytes(audio, audioMIMEType),
		}, genai.RoleUser),
	}

	result, err := t.generator.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return "", model.NewStepError(model.StepTranscribe, model.KindInference, fmt.Errorf("generate content: %w", err))
	}

	text, err := gemini.ResponseText(result)
	if err != nil {
		return "", model.NewStepError(model.StepTranscribe, model.KindInference, err)
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}
