package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/meeting-processor/internal/events"
	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

// State is a stage of a single run. Runs move forward only, and any
// non-terminal state may move to StateFailed.
type State string

const (
	StateStarted      State = "started"
	StateDownloading  State = "downloading"
	StateTranscribing State = "transcribing"
	StateSummarizing  State = "summarizing"
	StatePersisting   State = "persisting"
	StateNotifying    State = "notifying"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// run is the per-invocation bookkeeping. It never outlives Process.
type run struct {
	id      string
	req     model.JobRequest
	log     logger.Logger
	start   time.Time
	state   State
	entered time.Time
}

// enter records the transition to next, closing the timing of the previous stage.
func (p *implPipeline) enter(ctx context.Context, r *run, next State, cause error) {
	now := time.Now()
	if r.state != "" && !r.state.Terminal() {
		p.metrics.StageFinished(string(r.state), now.Sub(r.entered))
	}
	r.state = next
	r.entered = now

	r.log.Debug(ctx, "Stage: %s", next)

	ev := events.Event{
		RunID:      r.id,
		JobID:      r.req.JobID,
		Stage:      string(next),
		HappenedAt: now.Unix(),
	}
	if cause != nil {
		ev.Error = cause.Error()
		var se *model.StepError
		if errors.As(cause, &se) {
			ev.ErrorKind = string(se.Kind)
			ev.ErrorStep = string(se.Step)
		}
	}
	if err := p.events.Publish(ctx, ev); err != nil {
		r.log.Warn(ctx, "Failed to publish %s event: %v", next, err)
	}
}

// stepOf maps the stage a run was in to the step and error kind it reports.
func stepOf(s State) (model.Step, model.ErrorKind) {
	switch s {
	case StateTranscribing:
		return model.StepTranscribe, model.KindInference
	case StateSummarizing:
		return model.StepSummarize, model.KindInference
	case StatePersisting:
		return model.StepPersist, model.KindPersistence
	case StateNotifying:
		return model.StepNotify, model.KindTransport
	default:
		return model.StepDownload, model.KindTransport
	}
}
