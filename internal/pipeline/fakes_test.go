package pipeline

import (
	"context"
	"io"
	"sync"

	"github.com/nguyentantai21042004/meeting-processor/internal/events"
	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

func testLogger() logger.Logger {
	return logger.NewWithFormat(io.Discard, "error", "text")
}

type fakeStorage struct {
	mu    sync.Mutex
	audio []byte
	err   error
	refs  []string
}

func (f *fakeStorage) FetchAudio(_ context.Context, audioRef string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs = append(f.refs, audioRef)
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

type fakeTranscriber struct {
	mu    sync.Mutex
	texts []string // returned in order, last one repeats
	err   error
	panic any
	calls int
}

func (f *fakeTranscriber) Available() bool { return true }

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panic != nil {
		panic(f.panic)
	}
	if f.err != nil {
		return "", f.err
	}
	i := f.calls - 1
	if i >= len(f.texts) {
		i = len(f.texts) - 1
	}
	return f.texts[i], nil
}

type fakeSummarizer struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeSummarizer) Available() bool { return true }

func (f *fakeSummarizer) Summarize(_ context.Context, transcript string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "- summary of: " + transcript, nil
}

type fakeStore struct {
	mu             sync.Mutex
	jobs           map[string]model.Job
	completeErr    error
	failErr        error
	completedCalls int
	failedCalls    int
}

func newFakeStore(ids ...string) *fakeStore {
	s := &fakeStore{jobs: map[string]model.Job{}}
	for _, id := range ids {
		s.jobs[id] = model.Job{ID: id, Status: model.StatusPending}
	}
	return s
}

func (s *fakeStore) MarkCompleted(_ context.Context, jobID, transcript, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completedCalls++
	if s.completeErr != nil {
		return s.completeErr
	}
	job, ok := s.jobs[jobID]
	if !ok {
		return model.ErrNotFound
	}
	job.Status = model.StatusCompleted
	job.Transcript = transcript
	job.Summary = summary
	s.jobs[jobID] = job
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failedCalls++
	if s.failErr != nil {
		return s.failErr
	}
	job, ok := s.jobs[jobID]
	if !ok {
		return model.ErrNotFound
	}
	job.Status = model.StatusFailed
	s.jobs[jobID] = job
	return nil
}

func (s *fakeStore) Get(_ context.Context, jobID string) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return model.Job{}, model.ErrNotFound
	}
	return job, nil
}

func (s *fakeStore) Close() error { return nil }

type pushCall struct {
	token string
	jobID string
}

type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	panic any
	calls []pushCall
}

func (f *fakeNotifier) Notify(_ context.Context, token, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pushCall{token: token, jobID: jobID})
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingPublisher) Close() {}

func (r *recordingPublisher) stages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Stage)
	}
	return out
}
