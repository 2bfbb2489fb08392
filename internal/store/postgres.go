package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a pool on url. A non-empty password overrides the one in url.
func OpenPostgres(ctx context.Context, url, password string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if password != "" {
		cfg.ConnConfig.Password = password
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) MarkCompleted(ctx context.Context, jobID, transcript, summary string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE meetings
         SET status = $1, transcript = $2, summary = $3, updated_at = now()
         WHERE id = $4`,
		string(model.StatusCompleted), transcript, summary, jobID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (p *Postgres) MarkFailed(ctx context.Context, jobID string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE meetings SET status = $1, updated_at = now() WHERE id = $2`,
		string(model.StatusFailed), jobID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, jobID string) (model.Job, error) {
	var (
		job       model.Job
		status    string
		updatedAt time.Time
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id::text, coalesce(user_id::text, ''), status, coalesce(audio_path, ''),
                coalesce(transcript, ''), coalesce(summary, ''), updated_at
           FROM meetings WHERE id = $1`, jobID,
	).Scan(&job.ID, &job.OwnerID, &status, &job.AudioPath, &job.Transcript, &job.Summary, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Job{}, model.ErrNotFound
		}
		return model.Job{}, err
	}
	job.Status = model.Status(status)
	job.UpdatedAt = updatedAt
	return job, nil
}
