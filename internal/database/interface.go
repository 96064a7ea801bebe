package database

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/timebot/internal/models"
)

type DB interface {
	Close() error
	Migrate(ctx context.Context) error

	CreateWorker(ctx context.Context, worker *models.Worker) (*models.Worker, error)
	GetWorker(ctx context.Context, workerID int64) (*models.Worker, error)
	ListWorkers(ctx context.Context) ([]*models.Worker, error)
	LookupWorker(ctx context.Context, firstName, lastName string) (int64, bool, error)
	WorkerDisplayName(ctx context.Context, workerID int64) (string, error)

	UpsertSubmission(ctx context.Context, sub models.Submission) (decimal.NullDecimal, error)
	ListSubmissions(ctx context.Context, from, to time.Time) ([]*models.Submission, error)
}
