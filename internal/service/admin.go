package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jesses-code-adventures/timebot/internal/ledger"
	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/reply"
)

const adminSender = "admin"

// AddTime records hours for a worker on a given day on their behalf. It
// goes through the same ledger as text messages, so it replaces any
// earlier submission for that day.
func (s *TimebotService) AddTime(ctx context.Context, firstName, lastName string, day time.Time, hours decimal.Decimal, location string) (string, error) {
	workerID, found, err := s.db.LookupWorker(ctx, firstName, lastName)
	if err != nil {
		return "", fmt.Errorf("failed to look up worker: %w", err)
	}
	if !found {
		return "", fmt.Errorf("worker '%s %s' does not exist", firstName, lastName)
	}

	name, err := s.db.WorkerDisplayName(ctx, workerID)
	if err != nil {
		return "", fmt.Errorf("failed to get worker name: %w", err)
	}

	day = models.DayOf(day, time.UTC)
	hours = hours.Round(2)
	outcome, err := s.ledger.Submit(ctx, ledger.Entry{
		WorkerID: workerID,
		Day:      day,
		Hours:    hours,
		Message:  fmt.Sprintf("add-time %s %s %s %s", firstName, lastName, day.Format(models.DayFormat), reply.Hours(hours)),
		Location: location,
		Sender:   adminSender,
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("Recorded submission",
		zap.Int64("worker_id", workerID),
		zap.String("day", day.Format(models.DayFormat)),
		zap.String("hours", reply.Hours(hours)),
		zap.Bool("is_update", outcome.IsUpdate),
		zap.String("sender", adminSender),
	)

	if outcome.IsUpdate {
		return fmt.Sprintf("Updated submission for %s from %s to %s hours on %s",
			name, reply.Hours(outcome.PreviousHours), reply.Hours(outcome.Hours), day.Format(models.DayFormat)), nil
	}
	return fmt.Sprintf("Submitted %s hours for %s on %s", reply.Hours(outcome.Hours), name, day.Format(models.DayFormat)), nil
}
