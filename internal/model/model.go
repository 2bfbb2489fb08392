package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state stored on a meeting record.
type Status string

const (
	StatusRecording  Status = "recording"
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var ErrNotFound = errors.New("not found")

// JobRequest is one inbound processing request.
// An empty NotifyToken means no push notification is sent.
type JobRequest struct {
	JobID       string `json:"meetingId"`
	OwnerID     string `json:"userId"`
	AudioRef    string `json:"audioPath"`
	NotifyToken string `json:"pushToken,omitempty"`
}

// Validate reports the required fields that are missing or blank.
func (r JobRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.JobID) == "" {
		missing = append(missing, "meetingId")
	}
	if strings.TrimSpace(r.OwnerID) == "" {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(r.AudioRef) == "" {
		missing = append(missing, "audioPath")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Result holds the artifacts of a successful run.
type Result struct {
	Transcript string
	Summary    string
}

// Job is the persisted meeting record as seen by this service.
type Job struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"user_id"`
	Status     Status    `json:"status"`
	AudioPath  string    `json:"audio_path,omitempty"`
	Transcript string    `json:"transcript,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
