package watcher

import "context"

// Watcher defines the interface for spool directory monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one job request file found in the spool
type EventHandler func(ctx context.Context, filePath string) error
