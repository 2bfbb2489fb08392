package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meeting-processor/internal/logger"
)

// settleDelay gives writers time to finish a file before it is read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	spoolDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	sem           *semaphore
	wg            sync.WaitGroup
}

// Start drains requests already in the spool, then handles new ones as they
// are created. It returns once ctx is done and in-flight jobs have finished.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Spool watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.spoolDir)

	pending, err := filepath.Glob(filepath.Join(w.spoolDir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan spool: %w", err)
	}
	for _, path := range pending {
		if err := w.dispatch(ctx, path); err != nil {
			return w.drain(ctx, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx, ctx.Err())

		case event, ok := <-w.watcher.Events:
			if !ok {
				return w.drain(ctx, fmt.Errorf("watcher events channel closed"))
			}

			// Requests are written elsewhere and renamed in, or created in place.
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isJobRequest(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-request file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New job request detected: %s", event.Name)
			time.Sleep(settleDelay)
			if err := w.dispatch(ctx, event.Name); err != nil {
				return w.drain(ctx, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return w.drain(ctx, fmt.Errorf("watcher errors channel closed"))
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch runs the handler in a goroutine once a slot is free.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	if err := w.sem.acquire(ctx); err != nil {
		return err
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.sem.release()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) drain(ctx context.Context, cause error) error {
	w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
	w.wg.Wait()
	w.logger.Info(ctx, "Spool watcher stopped")
	return cause
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isJobRequest(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
