// Package ledger records time submissions so that a second submission for
// the same worker and day replaces the first one.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/utils"
)

var ErrStorage = errors.New("storage unavailable")

// Store writes a submission keyed by (WorkerID, Day) in one atomic
// insert-or-update. It returns the hours that were replaced, or a null
// value when the submission is new.
type Store interface {
	UpsertSubmission(ctx context.Context, sub models.Submission) (decimal.NullDecimal, error)
}

type Entry struct {
	WorkerID int64
	Day      time.Time
	Hours    decimal.Decimal
	Message  string
	Location string
	Sender   string
}

type Outcome struct {
	Hours         decimal.Decimal
	IsUpdate      bool
	PreviousHours decimal.Decimal
}

type Ledger struct {
	store   Store
	timeout time.Duration
	now     func() time.Time
}

// New returns a Ledger writing to store. A positive timeout bounds every
// store call.
func New(store Store, timeout time.Duration) *Ledger {
	return &Ledger{store: store, timeout: timeout, now: time.Now}
}

// Submit records entry and reports whether it replaced an earlier
// submission. Store failures, including timeouts, wrap ErrStorage.
func (l *Ledger) Submit(ctx context.Context, entry Entry) (Outcome, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	now := l.now()
	sub := models.Submission{
		ID:        models.NewUUID(),
		WorkerID:  entry.WorkerID,
		Day:       entry.Day,
		Hours:     entry.Hours,
		Message:   entry.Message,
		Location:  utils.OptionalString(entry.Location),
		Sender:    utils.OptionalString(entry.Sender),
		CreatedAt: now,
		UpdatedAt: now,
	}

	previous, err := l.store.UpsertSubmission(ctx, sub)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: failed to submit hours for worker %d on %s: %w",
			ErrStorage, entry.WorkerID, entry.Day.Format(models.DayFormat), err)
	}

	return Outcome{
		Hours:         entry.Hours,
		IsUpdate:      previous.Valid,
		PreviousHours: previous.Decimal,
	}, nil
}
