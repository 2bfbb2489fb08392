package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/meeting-processor/internal/config"
	"github.com/nguyentantai21042004/meeting-processor/internal/events"
	"github.com/nguyentantai21042004/meeting-processor/internal/gemini"
	"github.com/nguyentantai21042004/meeting-processor/internal/httpapi"
	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
	"github.com/nguyentantai21042004/meeting-processor/internal/metrics"
	"github.com/nguyentantai21042004/meeting-processor/internal/notifier"
	"github.com/nguyentantai21042004/meeting-processor/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-processor/internal/storage"
	"github.com/nguyentantai21042004/meeting-processor/internal/store"
	"github.com/nguyentantai21042004/meeting-processor/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-processor/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-processor/internal/watcher"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	flag.Parse()

	ctx := context.Background()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	path := *configPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		path = ""
	}

	// Load configuration
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithFormat(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Processing Service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Datastore: %s", cfg.Datastore.Driver)
	log.Info(ctx, "Audio bucket: %s", cfg.Storage.Bucket)

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Meeting Processing Service stopped")
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Initialize dependencies
	db, err := store.Open(ctx, cfg.Datastore)
	if err != nil {
		return fmt.Errorf("open datastore: %w", err)
	}
	defer db.Close()

	signer, err := storage.NewS3Signer(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	gen, err := gemini.NewGenerator(ctx, cfg.Inference.APIKey)
	if err != nil {
		return fmt.Errorf("init gemini: %w", err)
	}
	if gen == nil {
		log.Warn(ctx, "GEMINI_API_KEY not set; transcripts and summaries will be placeholders")
	}

	pub := events.Noop()
	if cfg.Events.NATSURL != "" {
		pub, err = events.Connect(cfg.Events.NATSURL, cfg.Events.Subject)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		log.Info(ctx, "Publishing lifecycle events to %s.*", cfg.Events.Subject)
	}
	defer pub.Close()

	m := metrics.New()
	proc := pipeline.New(pipeline.Deps{
		Storage:     storage.New(signer, log),
		Transcriber: transcriber.New(gen, cfg.Inference.TranscriptionModel, log),
		Summarizer:  summarizer.New(gen, cfg.Inference.SummaryModel, log),
		Store:       db,
		Notifier:    notifier.New(cfg.Notification.Endpoint, cfg.Notification.AppScheme, log),
		Events:      pub,
		Metrics:     m,
	}, log)

	api := httpapi.Server{Pipeline: proc, Jobs: db, Metrics: m, Logger: log}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		log.Info(ctx, "HTTP listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Optional spool ingress
	watchDone := make(chan struct{})
	if cfg.Spool.Dir != "" {
		w, err := newSpoolWatcher(cfg, proc, log)
		if err != nil {
			return err
		}
		defer w.Stop()

		go func() {
			defer close(watchDone)
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("spool watcher: %w", err)
			}
		}()
		log.Info(ctx, "Monitoring spool: %s", cfg.Spool.Dir)
	} else {
		close(watchDone)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	log.Info(ctx, "Press Ctrl+C to stop")

	var runErr error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case runErr = <-errChan:
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "HTTP shutdown: %v", err)
	}
	cancel()
	<-watchDone

	return runErr
}

func newSpoolWatcher(cfg *config.Config, proc pipeline.Pipeline, log logger.Logger) (watcher.Watcher, error) {
	if err := os.MkdirAll(cfg.Spool.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	handler, err := watcher.SpoolHandler(proc, cfg.Spool.Done, cfg.Spool.Failed, log)
	if err != nil {
		return nil, err
	}
	w, err := watcher.New(cfg.Spool.Dir, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return w, nil
}
