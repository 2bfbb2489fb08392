package transcriber

import "context"

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	// Available reports whether a speech-to-text backend is configured.
	Available() bool
}
