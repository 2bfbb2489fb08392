package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

const (
	pushTitle = "Transcript ready"
	pushBody  = "Your meeting transcript and summary are now available."
)

// Message is the push payload accepted by the Expo push service.
type Message struct {
	To    string      `json:"to"`
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Data  MessageData `json:"data"`
}

// MessageData carries the job reference. MeetingID duplicates JobID for the
// mobile client, which reads data.meetingId.
type MessageData struct {
	JobID     string `json:"jobId"`
	MeetingID string `json:"meetingId"`
	URL       string `json:"url"`
}

// DeepLink returns the in-app URL of a meeting.
func DeepLink(scheme, jobID string) string {
	return fmt.Sprintf("%s://meetings/%s", scheme, jobID)
}

func (n *implNotifier) Notify(ctx context.Context, token, jobID string) error {
	msg := Message{
		To:    token,
		Title: pushTitle,
		Body:  pushBody,
		Data: MessageData{
			JobID:     jobID,
			MeetingID: jobID,
			URL:       DeepLink(n.appScheme, jobID),
		},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return model.NewStepError(model.StepNotify, model.KindTransport, fmt.Errorf("encode push: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.NewStepError(model.StepNotify, model.KindTransport, fmt.Errorf("build push request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return model.NewStepError(model.StepNotify, model.KindTransport, fmt.Errorf("send push: %w", err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.NewStepError(model.StepNotify, model.KindTransport,
			fmt.Errorf("send push: unexpected status %d", resp.StatusCode))
	}

	n.logger.Info(ctx, "Push notification sent for job %s", jobID)
	return nil
}
