package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

// Pipeline runs one meeting job end to end.
type Pipeline interface {
	Process(ctx context.Context, req model.JobRequest) (model.Result, error)
}
