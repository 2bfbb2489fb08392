package store

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-processor/internal/config"
)

// Open connects to the datastore selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatastoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		pg, err := OpenPostgres(ctx, cfg.URL, cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return pg, nil
	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported datastore driver %q", cfg.Driver)
	}
}
