package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

// maxPayloadBytes caps the process-meeting body; the payload is four short strings.
const maxPayloadBytes = 64 << 10

func (s Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s Server) handleProcessMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.JobRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, fmt.Errorf("invalid payload: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err)
		return
	}

	// A job runs to completion even if the client disconnects.
	if _, err := s.Pipeline.Process(context.WithoutCancel(ctx), req); err != nil {
		s.Logger.Error(ctx, "process meeting %s: %v", req.JobID, err)
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	job, err := s.Jobs.Get(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr flattens any error into the {"detail": ...} body mobile clients read.
func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"detail": err.Error()})
}
