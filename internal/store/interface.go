package store

import (
	"context"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

// Store updates meeting records owned by the external datastore.
// Both marks return model.ErrNotFound when no record has the given id.
type Store interface {
	MarkCompleted(ctx context.Context, jobID, transcript, summary string) error
	MarkFailed(ctx context.Context, jobID string) error
	Get(ctx context.Context, jobID string) (model.Job, error)
	Close() error
}
