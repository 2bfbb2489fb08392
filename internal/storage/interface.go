package storage

import (
	"context"
	"time"
)

// Gateway resolves an audio reference into its raw bytes.
type Gateway interface {
	FetchAudio(ctx context.Context, audioRef string) ([]byte, error)
}

// Signer issues a time-limited download URL for an object key.
type Signer interface {
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
