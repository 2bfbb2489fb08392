package summarizer

import "context"

// Summarizer condenses a meeting transcript into bullet points.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	// Available reports whether a text-generation backend is configured.
	Available() bool
}
