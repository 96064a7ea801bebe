package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/timecard"
)

// DefaultTimecardPeriod is Monday through Sunday of last week in the
// configured timezone.
func (s *TimebotService) DefaultTimecardPeriod() (time.Time, time.Time) {
	return timecard.PreviousWeek(s.Today())
}

// Timecards builds one card per worker with hours between from and to,
// inclusive.
func (s *TimebotService) Timecards(ctx context.Context, from, to time.Time) ([]*timecard.TimeCard, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", to.Format(models.DayFormat), from.Format(models.DayFormat))
	}

	subs, err := s.db.ListSubmissions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	cards, err := timecard.Build(from, to, subs, func(workerID int64) (string, error) {
		return s.db.WorkerDisplayName(ctx, workerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build timecards: %w", err)
	}

	for _, card := range cards {
		worker, err := s.db.GetWorker(ctx, card.WorkerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get worker %d: %w", card.WorkerID, err)
		}
		if worker.Email != nil {
			card.Email = *worker.Email
		}
		if worker.Phone != nil {
			card.Phone = *worker.Phone
		}
	}

	return cards, nil
}

// WriteTimecardPDFs writes each card into dir and returns the file paths.
func (s *TimebotService) WriteTimecardPDFs(cards []*timecard.TimeCard, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create timecard directory: %w", err)
	}

	var paths []string
	for _, card := range cards {
		path := filepath.Join(dir, card.FileName())
		if err := writePDF(card, path); err != nil {
			return paths, err
		}
		s.logger.Info("Wrote timecard", zap.Int64("worker_id", card.WorkerID), zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

func writePDF(card *timecard.TimeCard, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := card.WritePDF(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
