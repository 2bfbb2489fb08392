package transcriber

import (
	"github.com/nguyentantai21042004/meeting-processor/internal/gemini"
	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
)

type implTranscriber struct {
	generator gemini.Generator
	model     string
	logger    logger.Logger
}

// New creates a Transcriber. A nil generator yields placeholder mode.
func New(gen gemini.Generator, model string, log logger.Logger) Transcriber {
	if model == "" {
		model = gemini.DefaultModel
	}
	return &implTranscriber{
		generator: gen,
		model:     model,
		logger:    log,
	}
}
