// Package service ties message parsing, the ledger and the stores together
// behind the operations the CLI and the webhook call.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jesses-code-adventures/timebot/internal/command"
	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/database"
	"github.com/jesses-code-adventures/timebot/internal/ledger"
	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/notify"
	"github.com/jesses-code-adventures/timebot/internal/reply"
)

type TimebotService struct {
	db       database.DB
	cfg      *config.Config
	ledger   *ledger.Ledger
	parser   *command.Parser
	notifier notify.Notifier
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

func NewTimebotService(db database.DB, cfg *config.Config, notifier notify.Notifier, logger *zap.Logger) *TimebotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	l := ledger.New(db, cfg.StoreTimeout)
	return &TimebotService{
		db:       db,
		cfg:      cfg,
		ledger:   l,
		parser:   command.NewParser(db, l, location),
		notifier: notifier,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

// WithClock replaces the current time used for submission days and default
// timecard periods.
func (s *TimebotService) WithClock(now func() time.Time) *TimebotService {
	s.now = now
	s.parser.WithClock(now)
	return s
}

// InitDB creates the schema if it does not exist.
func (s *TimebotService) InitDB(ctx context.Context) error {
	if err := s.db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Today is the current date in the configured timezone.
func (s *TimebotService) Today() time.Time {
	return models.DayOf(s.now(), s.location)
}

// HandleMessage processes one inbound message and returns the reply text.
// An empty reply means the message was not addressed to the bot.
func (s *TimebotService) HandleMessage(ctx context.Context, body, from string) (text string) {
	logger := s.logger.With(
		zap.String("request_id", models.NewUUID()),
		zap.String("from", from),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic while handling message",
				zap.Any("panic", r),
				zap.String("body", body),
				zap.Stack("stack"),
			)
			text = reply.Apology
		}
	}()

	result := s.parser.Process(ctx, body, from)
	text = reply.Format(result)

	switch result.Kind {
	case command.Unrecognized:
		logger.Debug("Ignoring message", zap.String("body", body))
	case command.Help:
		logger.Info("Sent usage", zap.String("body", body))
	case command.Failure:
		fields := []zap.Field{
			zap.String("body", body),
			zap.Stringer("code", result.Code),
			zap.String("detail", result.Detail),
		}
		if result.Code == command.StorageError {
			logger.Error("Failed to record submission", fields...)
		} else {
			logger.Warn("Rejected message", fields...)
		}
	case command.Success:
		sub := result.Submitted
		logger.Info("Recorded submission",
			zap.Int64("worker_id", sub.WorkerID),
			zap.String("day", sub.Day.Format(models.DayFormat)),
			zap.String("hours", reply.Hours(sub.Hours)),
			zap.Bool("is_update", sub.IsUpdate),
			zap.String("location", sub.Location),
		)
		s.notify(ctx, logger, sub.WorkerID, text)
	}

	return text
}

// notify delivers a confirmation. The submission is already committed, so
// nothing here may change the reply.
func (s *TimebotService) notify(ctx context.Context, logger *zap.Logger, workerID int64, text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Recovered from panic in notifier", zap.Any("panic", r), zap.Int64("worker_id", workerID))
		}
	}()

	if s.cfg.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.NotifyTimeout)
		defer cancel()
	}

	if err := s.notifier.Notify(ctx, workerID, text); err != nil {
		logger.Warn("Failed to deliver confirmation", zap.Error(err), zap.Int64("worker_id", workerID))
	}
}
