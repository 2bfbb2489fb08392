package events

import "context"

// Publisher emits job lifecycle events. Delivery is best-effort.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close()
}

// Event records one stage transition of one pipeline run.
type Event struct {
	RunID      string `json:"run_id"`
	JobID      string `json:"job_id"`
	Stage      string `json:"stage"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	ErrorStep  string `json:"error_step,omitempty"`
	HappenedAt int64  `json:"happened_at"`
}
