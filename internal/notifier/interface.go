package notifier

import "context"

// Notifier delivers the "transcript ready" push for a finished job.
type Notifier interface {
	Notify(ctx context.Context, token, jobID string) error
}
