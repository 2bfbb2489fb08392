package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

// SQLite is a single-file store for local runs. It mirrors the meetings
// table of the hosted database.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS meetings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  audio_path TEXT,
  transcript TEXT,
  summary TEXT,
  updated_at INTEGER NOT NULL
);
`); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// CreateMeeting inserts a record. The pipeline never calls it; records are
// created by the client that uploads the audio.
func (s *SQLite) CreateMeeting(ctx context.Context, job model.Job) error {
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meetings (id, user_id, status, audio_path, updated_at) VALUES (?, ?, ?, ?, ?)`,
		job.ID, job.OwnerID, string(job.Status), job.AudioPath, job.UpdatedAt.UnixMilli(),
	)
	return err
}

func (s *SQLite) MarkCompleted(ctx context.Context, jobID, transcript, summary string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE meetings
         SET status = ?, transcript = ?, summary = ?, updated_at = ?
         WHERE id = ?`,
		string(model.StatusCompleted), transcript, summary, time.Now().UnixMilli(), jobID,
	)
	return checkAffected(res, err)
}

func (s *SQLite) MarkFailed(ctx context.Context, jobID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE meetings SET status = ?, updated_at = ? WHERE id = ?`,
		string(model.StatusFailed), time.Now().UnixMilli(), jobID,
	)
	return checkAffected(res, err)
}

func (s *SQLite) Get(ctx context.Context, jobID string) (model.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, status, audio_path, transcript, summary, updated_at
       FROM meetings WHERE id = ?`, jobID,
	)
	var (
		job                            model.Job
		status                         string
		audioPath, transcript, summary sql.NullString
		updatedMs                      int64
	)
	if err := row.Scan(&job.ID, &job.OwnerID, &status, &audioPath, &transcript, &summary, &updatedMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Job{}, model.ErrNotFound
		}
		return model.Job{}, err
	}
	job.Status = model.Status(status)
	job.AudioPath = audioPath.String
	job.Transcript = transcript.String
	job.Summary = summary.String
	job.UpdatedAt = time.UnixMilli(updatedMs)
	return job, nil
}

func checkAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
