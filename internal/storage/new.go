package storage

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
)

const (
	// SignedURLExpiry bounds the lifetime of a download URL.
	SignedURLExpiry = 15 * time.Minute
	// DownloadTimeout bounds the whole GET including the body read.
	DownloadTimeout = 60 * time.Second
)

type implGateway struct {
	signer Signer
	client *http.Client
	logger logger.Logger
}

// New creates a Gateway that signs with signer and downloads over HTTP
func New(signer Signer, log logger.Logger) Gateway {
	return &implGateway{
		signer: signer,
		client: &http.Client{Timeout: DownloadTimeout},
		logger: log,
	}
}
