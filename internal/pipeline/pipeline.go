package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

// compensationTimeout bounds the markFailed write, which runs detached from
// the caller's context.
const compensationTimeout = 30 * time.Second

// Process orchestrates the entire meeting pipeline. On any failure the job is
// marked failed before the error is returned; a notification failure is
// logged only.
func (p *implPipeline) Process(ctx context.Context, req model.JobRequest) (model.Result, error) {
	runID := uuid.NewString()
	r := &run{
		id:    runID,
		req:   req,
		log:   p.logger.With("job_id", req.JobID).With("run_id", runID),
		start: time.Now(),
	}

	r.log.Info(ctx, "Starting meeting processing: %s", req.AudioRef)
	p.enter(ctx, r, StateStarted, nil)

	result, err := p.execute(ctx, r)
	if err != nil {
		return model.Result{}, p.fail(ctx, r, err)
	}

	p.notify(ctx, r)

	p.enter(ctx, r, StateDone, nil)
	duration := time.Since(r.start)
	p.metrics.JobFinished(string(model.StatusCompleted), duration)
	r.log.Info(ctx, "Processing completed in %s", duration)

	return result, nil
}

// execute runs the fallible steps in order. Each step's output feeds the next.
// A panicking collaborator is reported as a failure of the step it ran in.
func (p *implPipeline) execute(ctx context.Context, r *run) (result model.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			step, kind := stepOf(r.state)
			result = model.Result{}
			err = model.NewStepError(step, kind, fmt.Errorf("panic: %v", rec))
		}
	}()

	// Step 1: Signed URL and download
	p.enter(ctx, r, StateDownloading, nil)
	audio, err := p.storage.FetchAudio(ctx, r.req.AudioRef)
	if err != nil {
		return model.Result{}, fmt.Errorf("fetch audio: %w", err)
	}

	// Step 2: Transcribe
	p.enter(ctx, r, StateTranscribing, nil)
	transcript, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return model.Result{}, fmt.Errorf("transcribe: %w", err)
	}

	// Step 3: Summarize
	p.enter(ctx, r, StateSummarizing, nil)
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return model.Result{}, fmt.Errorf("summarize: %w", err)
	}

	// Step 4: Persist both artifacts in one write
	p.enter(ctx, r, StatePersisting, nil)
	if err := p.store.MarkCompleted(ctx, r.req.JobID, transcript, summary); err != nil {
		return model.Result{}, model.NewStepError(model.StepPersist, model.KindPersistence,
			fmt.Errorf("mark completed: %w", err))
	}

	return model.Result{Transcript: transcript, Summary: summary}, nil
}

// fail applies the compensation write and returns the error to surface.
func (p *implPipeline) fail(ctx context.Context, r *run, cause error) error {
	r.log.Error(ctx, "Processing failed during %s: %v", r.state, cause)

	compCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if err := p.store.MarkFailed(compCtx, r.req.JobID); err != nil {
		r.log.Error(ctx, "Failed to mark job failed: %v", err)
		cause = errors.Join(cause, model.NewStepError(model.StepPersist, model.KindPersistence,
			fmt.Errorf("mark failed: %w", err)))
	}

	p.enter(ctx, r, StateFailed, cause)
	p.metrics.JobFinished(string(model.StatusFailed), time.Since(r.start))
	return cause
}

// notify sends the push when the request carries a token. The record is
// already completed, so delivery problems do not change the outcome.
func (p *implPipeline) notify(ctx context.Context, r *run) {
	if r.req.NotifyToken == "" {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error(ctx, "Push notification panicked: %v", rec)
			p.metrics.Notification("failed")
		}
	}()

	p.enter(ctx, r, StateNotifying, nil)
	if err := p.notifier.Notify(ctx, r.req.NotifyToken, r.req.JobID); err != nil {
		r.log.Warn(ctx, "Push notification failed: %v", err)
		p.metrics.Notification("failed")
		return
	}
	p.metrics.Notification("sent")
}
