package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/timebot/internal/models"
)

type key struct {
	workerID int64
	day      string
}

// MemoryStore implements Store in memory.
// Thread-safe via Mutex; the lookup and the write happen under one lock.
type MemoryStore struct {
	mu          sync.Mutex
	submissions []models.Submission
	index       map[key]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[key]int)}
}

func (s *MemoryStore) UpsertSubmission(ctx context.Context, sub models.Submission) (decimal.NullDecimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.NullDecimal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{workerID: sub.WorkerID, day: sub.Day.Format(models.DayFormat)}
	i, ok := s.index[k]
	if !ok {
		sub.PreviousHours = decimal.NullDecimal{}
		s.index[k] = len(s.submissions)
		s.submissions = append(s.submissions, sub)
		return decimal.NullDecimal{}, nil
	}

	existing := &s.submissions[i]
	previous := decimal.NullDecimal{Decimal: existing.Hours, Valid: true}
	existing.PreviousHours = previous
	existing.Hours = sub.Hours
	existing.Message = sub.Message
	existing.Location = sub.Location
	existing.Sender = sub.Sender
	existing.UpdatedAt = sub.UpdatedAt
	return previous, nil
}

// Get returns a copy of the submission stored for the key.
func (s *MemoryStore) Get(workerID int64, day time.Time) (models.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[key{workerID: workerID, day: day.Format(models.DayFormat)}]
	if !ok {
		return models.Submission{}, false
	}
	return s.submissions[i], true
}

// ListSubmissions returns submissions with from <= day <= to, ordered by
// worker then day.
func (s *MemoryStore) ListSubmissions(ctx context.Context, from, to time.Time) ([]*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.Submission
	for _, sub := range s.submissions {
		if sub.Day.Before(from) || sub.Day.After(to) {
			continue
		}
		copied := sub
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].WorkerID != result[j].WorkerID {
			return result[i].WorkerID < result[j].WorkerID
		}
		return result[i].Day.Before(result[j].Day)
	})
	return result, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}
