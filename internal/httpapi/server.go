package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/metrics"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
	"github.com/nguyentantai21042004/meeting-processor/internal/pipeline"
)

// JobReader is the read side of the meeting store.
type JobReader interface {
	Get(ctx context.Context, jobID string) (model.Job, error)
}

type Server struct {
	Pipeline pipeline.Pipeline
	Jobs     JobReader
	Metrics  *metrics.Metrics // optional
	Logger   logger.Logger
}

func (s Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Logger))

	r.Get("/health", s.handleHealth)
	r.Post("/process-meeting", s.handleProcessMeeting)
	r.Get("/meetings/{id}", s.handleGetMeeting)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	return r
}

// requestLogger writes one line per request through the service logger.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.With("request_id", middleware.GetReqID(r.Context())).Info(r.Context(),
					"%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
