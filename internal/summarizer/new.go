package summarizer

import (
	"github.com/nguyentantai21042004/meeting-processor/internal/gemini"
	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
)

type implSummarizer struct {
	generator gemini.Generator
	logger    logger.Logger
	model     string
}

// New creates a Summarizer backed by gen. A nil gen yields placeholder mode.
func New(gen gemini.Generator, model string, log logger.Logger) Summarizer {
	if model == "" {
		model = gemini.DefaultModel
	}
	return &implSummarizer{
		generator: gen,
		logger:    log,
		model:     model,
	}
}
