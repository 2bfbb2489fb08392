package pipeline

import (
	"github.com/nguyentantai21042004/meeting-processor/internal/events"
	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/metrics"
	"github.com/nguyentantai21042004/meeting-processor/internal/notifier"
	"github.com/nguyentantai21042004/meeting-processor/internal/storage"
	"github.com/nguyentantai21042004/meeting-processor/internal/store"
	"github.com/nguyentantai21042004/meeting-processor/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-processor/internal/transcriber"
)

// Deps are the collaborators of a Pipeline. Events and Metrics are optional.
type Deps struct {
	Storage     storage.Gateway
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Store       store.Store
	Notifier    notifier.Notifier
	Events      events.Publisher
	Metrics     *metrics.Metrics
}

type implPipeline struct {
	storage     storage.Gateway
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	store       store.Store
	notifier    notifier.Notifier
	events      events.Publisher
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// New creates a new Pipeline instance
func New(deps Deps, log logger.Logger) Pipeline {
	pub := deps.Events
	if pub == nil {
		pub = events.Noop()
	}
	return &implPipeline{
		storage:     deps.Storage,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		store:       deps.Store,
		notifier:    deps.Notifier,
		events:      pub,
		metrics:     deps.Metrics,
		logger:      log,
	}
}
