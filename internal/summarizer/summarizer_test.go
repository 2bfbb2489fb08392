package summarizer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-processor/internal/gemini"
	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: genai.NewContentFromText(text, genai.RoleModel),
	}}}
}

func testLogger() logger.Logger {
	return logger.NewWithFormat(io.Discard, "error", "text")
}

func TestSummarizePlaceholder(t *testing.T) {
	s := New(nil, "", testLogger())
	assert.False(t, s.Available())

	got, err := s.Summarize(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, Placeholder, got)
}

func TestSummarizeUsesFixedInstruction(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("- Decision: ship Friday")}
	s := New(gen, "gemini-2.5-flash", testLogger())

	got, err := s.Summarize(context.Background(), "We agreed to ship on Friday.")
	require.NoError(t, err)
	assert.Equal(t, "- Decision: ship Friday", got)
	assert.Equal(t, 1, gen.calls)

	require.NotNil(t, gen.config)
	require.NotNil(t, gen.config.SystemInstruction)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "decisions, action items, and follow-ups")

	require.Len(t, gen.contents, 1)
	assert.Contains(t, gen.contents[0].Parts[0].Text, "We agreed to ship on Friday.")
}

func TestSummarizeErrors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"remote error", &fakeGenerator{err: errors.New("503 unavailable")}},
		{"empty response", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.gen, "gemini-2.5-flash", testLogger())
			_, err := s.Summarize(context.Background(), "transcript")
			require.Error(t, err)
			assert.True(t, model.IsKind(err, model.KindInference))
			assert.Equal(t, model.StepSummarize, model.StepOf(err))
		})
	}
}

func TestNewDefaultsModel(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("- ship Friday")}
	s := New(gen, "", testLogger())

	_, err := s.Summarize(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, gemini.DefaultModel, gen.model)
}
