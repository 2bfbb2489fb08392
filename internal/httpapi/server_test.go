package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/metrics"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

type fakePipeline struct {
	err  error
	reqs []model.JobRequest
}

func (f *fakePipeline) Process(_ context.Context, req model.JobRequest) (model.Result, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return model.Result{}, f.err
	}
	return model.Result{Transcript: "t", Summary: "s"}, nil
}

type fakeJobs map[string]model.Job

func (f fakeJobs) Get(_ context.Context, id string) (model.Job, error) {
	job, ok := f[id]
	if !ok {
		return model.Job{}, model.ErrNotFound
	}
	return job, nil
}

func newTestServer(p *fakePipeline, jobs fakeJobs) *httptest.Server {
	s := Server{
		Pipeline: p,
		Jobs:     jobs,
		Metrics:  metrics.New(),
		Logger:   logger.NewWithFormat(io.Discard, "error", "text"),
	}
	return httptest.NewServer(s.Router())
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakePipeline{}, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"ok": true}, decodeBody(t, resp))
}

func TestProcessMeeting(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		pipeErr    error
		wantStatus int
		wantBody   map[string]any
		wantCalls  int
	}{
		{
			name:       "success",
			body:       `{"meetingId":"m1","userId":"u1","audioPath":"a/b.m4a","pushToken":"tok"}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"ok": true},
			wantCalls:  1,
		},
		{
			name:       "success without token",
			body:       `{"meetingId":"m1","userId":"u1","audioPath":"a/b.m4a"}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"ok": true},
			wantCalls:  1,
		},
		{
			name:       "pipeline failure",
			body:       `{"meetingId":"m1","userId":"u1","audioPath":"missing.m4a"}`,
			pipeErr:    errors.New("fetch audio: sign_url: object not found"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"detail": "fetch audio: sign_url: object not found"},
			wantCalls:  1,
		},
		{
			name:       "missing fields",
			body:       `{"meetingId":"m1"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   map[string]any{"detail": "missing required fields: userId, audioPath"},
		},
		{
			name:       "malformed json",
			body:       `{"meetingId":`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePipeline{err: tt.pipeErr}
			srv := newTestServer(p, nil)
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/process-meeting", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, body)
			} else {
				assert.Contains(t, body, "detail")
			}
			assert.Len(t, p.reqs, tt.wantCalls)
		})
	}
}

func TestProcessMeetingPassesRequestThrough(t *testing.T) {
	p := &fakePipeline{}
	srv := newTestServer(p, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/process-meeting", "application/json",
		strings.NewReader(`{"meetingId":"m1","userId":"u1","audioPath":"a/b.m4a","pushToken":"tok"}`))
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, p.reqs, 1)
	assert.Equal(t, model.JobRequest{JobID: "m1", OwnerID: "u1", AudioRef: "a/b.m4a", NotifyToken: "tok"}, p.reqs[0])
}

func TestGetMeeting(t *testing.T) {
	jobs := fakeJobs{"m1": {
		ID:         "m1",
		OwnerID:    "u1",
		Status:     model.StatusCompleted,
		Transcript: "hello",
		Summary:    "- hi",
		UpdatedAt:  time.Unix(1700000000, 0).UTC(),
	}}
	srv := newTestServer(&fakePipeline{}, jobs)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/meetings/m1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "hello", body["transcript"])

	resp, err = http.Get(srv.URL + "/meetings/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, map[string]any{"detail": "not found"}, decodeBody(t, resp))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&fakePipeline{}, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
