package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/models"
)

func newTestDB(t *testing.T) *SQLDB {
	t.Helper()
	cfg := &config.Config{
		DatabaseURL:    filepath.Join(t.TempDir(), "test.db"),
		DatabaseDriver: "sqlite3",
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func strPtr(s string) *string { return &s }

func submission(workerID int64, day time.Time, hours string) models.Submission {
	now := time.Now().UTC()
	return models.Submission{
		ID:        models.NewUUID(),
		WorkerID:  workerID,
		Day:       day,
		Hours:     decimal.RequireFromString(hours),
		Message:   "time taylor poulsen 9:00am 5:00pm 1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate(context.Background()))
}

func TestWorkers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	boss, err := db.CreateWorker(ctx, &models.Worker{FirstName: "Jr", LastName: "Poulsen"})
	require.NoError(t, err)

	worker, err := db.CreateWorker(ctx, &models.Worker{
		FirstName:    "Taylor",
		LastName:     "POULSEN",
		Phone:        strPtr("5555550100"),
		SupervisorID: &boss.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, worker.ID)
	assert.Equal(t, "taylor", worker.FirstName)
	assert.Equal(t, "poulsen", worker.LastName)

	id, found, err := db.LookupWorker(ctx, "TAYLOR", "Poulsen")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, worker.ID, id)

	_, found, err = db.LookupWorker(ctx, "nobody", "here")
	require.NoError(t, err)
	assert.False(t, found)

	name, err := db.WorkerDisplayName(ctx, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taylor Poulsen", name)

	got, err := db.GetWorker(ctx, worker.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "5555550100", *got.Phone)
	assert.Nil(t, got.Email)
	require.NotNil(t, got.SupervisorID)
	assert.Equal(t, boss.ID, *got.SupervisorID)

	_, err = db.GetWorker(ctx, 9999)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	workers, err := db.ListWorkers(ctx)
	require.NoError(t, err)
	assert.Len(t, workers, 2)

	_, err = db.CreateWorker(ctx, &models.Worker{FirstName: "taylor", LastName: "poulsen"})
	assert.Error(t, err, "duplicate names are rejected")
}

func TestUpsertSubmission(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	worker, err := db.CreateWorker(ctx, &models.Worker{FirstName: "taylor", LastName: "poulsen"})
	require.NoError(t, err)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	previous, err := db.UpsertSubmission(ctx, submission(worker.ID, day, "8"))
	require.NoError(t, err)
	assert.False(t, previous.Valid)

	updated := submission(worker.ID, day, "6.25")
	updated.Location = strPtr("North Lot")
	previous, err = db.UpsertSubmission(ctx, updated)
	require.NoError(t, err)
	require.True(t, previous.Valid)
	assert.True(t, previous.Decimal.Equal(decimal.NewFromInt(8)), "previous = %s", previous.Decimal)

	previous, err = db.UpsertSubmission(ctx, submission(worker.ID, day.AddDate(0, 0, 1), "5"))
	require.NoError(t, err)
	assert.False(t, previous.Valid)

	subs, err := db.ListSubmissions(ctx, day, day.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Len(t, subs, 2)

	first := subs[0]
	assert.Equal(t, day, first.Day)
	assert.True(t, first.Hours.Equal(decimal.RequireFromString("6.25")), "hours = %s", first.Hours)
	require.True(t, first.PreviousHours.Valid)
	assert.True(t, first.PreviousHours.Decimal.Equal(decimal.NewFromInt(8)))
	require.NotNil(t, first.Location)
	assert.Equal(t, "North Lot", *first.Location)

	assert.Equal(t, day.AddDate(0, 0, 1), subs[1].Day)
	assert.False(t, subs[1].PreviousHours.Valid)
}

func TestUpsertSubmissionConcurrentSameKey(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	worker, err := db.CreateWorker(ctx, &models.Worker{FirstName: "sam", LastName: "rivera"})
	require.NoError(t, err)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	const submitters = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	inserts := 0
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			previous, err := db.UpsertSubmission(ctx, submission(worker.ID, day, "4"))
			if !assert.NoError(t, err) {
				return
			}
			if !previous.Valid {
				mu.Lock()
				inserts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserts)
	subs, err := db.ListSubmissions(ctx, day, day)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Taylor Poulsen", DisplayName("taylor", "poulsen"))
	assert.Equal(t, "Sam Rivera", DisplayName("SAM", "rivera"))
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = ? AND b = ?", sqliteDialect.rebind("a = ? AND b = ?"))
	assert.Equal(t, "a = $1 AND b = $2", postgresDialect.rebind("a = ? AND b = ?"))
	assert.Equal(t, postgresDialect, dialectFor("postgres"))
	assert.Equal(t, sqliteDialect, dialectFor("libsql"))
}
