// Package notify delivers submission confirmations to workers.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers text to a worker. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, workerID int64, text string) error
}

// LogNotifier records confirmations in the log instead of sending them.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, workerID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.Info("Confirmation delivered",
		zap.Int64("worker_id", workerID),
		zap.String("text", text),
	)
	return nil
}
