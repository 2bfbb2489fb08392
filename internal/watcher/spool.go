package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
	"github.com/nguyentantai21042004/meeting-processor/internal/pipeline"
)

// SpoolHandler returns an EventHandler that decodes a job request file, runs
// it through p and moves the file to doneDir or failedDir.
func SpoolHandler(p pipeline.Pipeline, doneDir, failedDir string, log logger.Logger) (EventHandler, error) {
	for _, dir := range []string{doneDir, failedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create spool dir %s: %w", dir, err)
		}
	}

	return func(ctx context.Context, filePath string) error {
		req, err := readRequest(filePath)
		if err != nil {
			return move(filePath, failedDir, err)
		}

		if _, err := p.Process(context.WithoutCancel(ctx), req); err != nil {
			return move(filePath, failedDir, fmt.Errorf("process %s: %w", req.JobID, err))
		}

		log.Info(ctx, "Spooled job %s completed", req.JobID)
		return move(filePath, doneDir, nil)
	}, nil
}

func readRequest(path string) (model.JobRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.JobRequest{}, fmt.Errorf("read request: %w", err)
	}

	var req model.JobRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return model.JobRequest{}, fmt.Errorf("decode request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return model.JobRequest{}, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// move relocates path into dir and returns cause, or the move error if the
// file could not be relocated.
func move(path, dir string, cause error) error {
	if err := os.Rename(path, filepath.Join(dir, filepath.Base(path))); err != nil {
		if cause != nil {
			return fmt.Errorf("%w (move to %s: %v)", cause, dir, err)
		}
		return fmt.Errorf("move to %s: %w", dir, err)
	}
	return cause
}
