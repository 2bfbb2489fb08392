package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-processor/internal/config"
	"github.com/nguyentantai21042004/meeting-processor/internal/model"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "meetings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteMarkCompleted(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, db.CreateMeeting(ctx, model.Job{ID: "m1", OwnerID: "u1", Status: model.StatusPending, AudioPath: "u1/m1.m4a"}))

	require.NoError(t, db.MarkCompleted(ctx, "m1", "hello", "- hi"))

	job, err := db.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, job.Status)
	assert.Equal(t, "hello", job.Transcript)
	assert.Equal(t, "- hi", job.Summary)
	assert.Equal(t, "u1", job.OwnerID)
	assert.Equal(t, "u1/m1.m4a", job.AudioPath)
}

func TestSQLiteMarkFailedKeepsArtifactsUntouched(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, db.CreateMeeting(ctx, model.Job{ID: "m1", Status: model.StatusPending}))

	require.NoError(t, db.MarkFailed(ctx, "m1"))

	job, err := db.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, job.Status)
	assert.Empty(t, job.Transcript)
	assert.Empty(t, job.Summary)
}

func TestSQLiteUnknownID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	assert.ErrorIs(t, db.MarkCompleted(ctx, "nope", "t", "s"), model.ErrNotFound)
	assert.ErrorIs(t, db.MarkFailed(ctx, "nope"), model.ErrNotFound)
	_, err := db.Get(ctx, "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.DatastoreConfig{Driver: config.DriverSQLite, URL: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	_, ok := s.(*SQLite)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.DatastoreConfig{Driver: "mysql", URL: "x"})
	assert.Error(t, err)
}

func TestOpenPostgresRejectsBadURL(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "postgres://%zz", "secret")
	assert.Error(t, err)
}
