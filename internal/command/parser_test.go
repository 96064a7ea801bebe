package command

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/timebot/internal/ledger"
	"github.com/jesses-code-adventures/timebot/internal/models"
)

const sender = "+15555550100"

type fakeDirectory struct {
	workers map[string]int64
	names   map[int64]string
	err     error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		workers: map[string]int64{"taylor poulsen": 1, "sam rivera": 2},
		names:   map[int64]string{1: "Taylor Poulsen", 2: "Sam Rivera"},
	}
}

func (d *fakeDirectory) LookupWorker(ctx context.Context, firstName, lastName string) (int64, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}
	id, ok := d.workers[strings.ToLower(firstName+" "+lastName)]
	return id, ok, nil
}

func (d *fakeDirectory) WorkerDisplayName(ctx context.Context, workerID int64) (string, error) {
	return d.names[workerID], nil
}

type countingStore struct {
	*ledger.MemoryStore
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingStore) UpsertSubmission(ctx context.Context, sub models.Submission) (decimal.NullDecimal, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return decimal.NullDecimal{}, s.err
	}
	return s.MemoryStore.UpsertSubmission(ctx, sub)
}

func newTestParser(t *testing.T) (*Parser, *countingStore) {
	t.Helper()
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	store := &countingStore{MemoryStore: ledger.NewMemoryStore()}
	p := NewParser(newFakeDirectory(), ledger.New(store, time.Second), denver).
		WithClock(func() time.Time {
			// 02:30 UTC on the 20th is still the 19th in Denver.
			return time.Date(2026, 10, 20, 2, 30, 0, 0, time.UTC)
		})
	return p, store
}

func TestProcessSuccess(t *testing.T) {
	p, store := newTestParser(t)

	result := p.Process(context.Background(), "time taylor poulsen 9:00am 5:00pm 1", sender)
	if result.Kind != Success {
		t.Fatalf("Kind = %s, want success (code %s, detail %q)", result.Kind, result.Code, result.Detail)
	}
	got := result.Submitted
	if got.Hours.StringFixed(2) != "7.00" {
		t.Errorf("Hours = %s, want 7.00", got.Hours.StringFixed(2))
	}
	if got.WorkerID != 1 || got.WorkerName != "Taylor Poulsen" {
		t.Errorf("worker = %d %q, want 1 Taylor Poulsen", got.WorkerID, got.WorkerName)
	}
	if got.IsUpdate {
		t.Errorf("IsUpdate = true, want false")
	}
	if want := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC); !got.Day.Equal(want) {
		t.Errorf("Day = %s, want %s", got.Day, want)
	}
	if store.calls != 1 {
		t.Errorf("upsert calls = %d, want 1", store.calls)
	}

	stored, ok := store.Get(1, got.Day)
	if !ok {
		t.Fatalf("submission was not stored")
	}
	if stored.Sender == nil || *stored.Sender != sender {
		t.Errorf("stored sender = %v, want %s", stored.Sender, sender)
	}
}

func TestProcessUpdateSameDay(t *testing.T) {
	p, _ := newTestParser(t)
	ctx := context.Background()

	first := p.Process(ctx, "Time Taylor Poulsen 8:00am 4:00pm 0", sender)
	if first.Kind != Success || first.Submitted.IsUpdate {
		t.Fatalf("first submission = %+v, want new success", first)
	}

	second := p.Process(ctx, "HOURS taylor POULSEN 8:00am 2:00pm 0", sender)
	if second.Kind != Success {
		t.Fatalf("second Kind = %s, want success", second.Kind)
	}
	if !second.Submitted.IsUpdate {
		t.Errorf("IsUpdate = false, want true")
	}
	if second.Submitted.PreviousHours.StringFixed(2) != "8.00" {
		t.Errorf("PreviousHours = %s, want 8.00", second.Submitted.PreviousHours.StringFixed(2))
	}
	if second.Submitted.Hours.StringFixed(2) != "6.00" {
		t.Errorf("Hours = %s, want 6.00", second.Submitted.Hours.StringFixed(2))
	}
}

func TestProcessLocation(t *testing.T) {
	p, store := newTestParser(t)

	result := p.Process(context.Background(), `time taylor poulsen 11:46am 5:04pm 1.25 3.6 "Main Street Project"`, sender)
	if result.Kind != Success {
		t.Fatalf("Kind = %s, want success (code %s)", result.Kind, result.Code)
	}
	if result.Submitted.Location != "Main Street Project" {
		t.Errorf("Location = %q, want %q", result.Submitted.Location, "Main Street Project")
	}
	if result.Submitted.Hours.StringFixed(2) != "7.65" {
		t.Errorf("Hours = %s, want 7.65", result.Submitted.Hours.StringFixed(2))
	}

	stored, _ := store.Get(1, result.Submitted.Day)
	if stored.Location == nil || *stored.Location != "Main Street Project" {
		t.Errorf("stored location = %v", stored.Location)
	}
}

func TestProcessCurlyQuotedLocation(t *testing.T) {
	p, _ := newTestParser(t)

	result := p.Process(context.Background(), "time “Elm Yard” sam rivera 7am 3pm 0.5", sender)
	if result.Kind != Success {
		t.Fatalf("Kind = %s, want success (code %s)", result.Kind, result.Code)
	}
	if result.Submitted.Location != "Elm Yard" {
		t.Errorf("Location = %q, want %q", result.Submitted.Location, "Elm Yard")
	}
}

func TestProcessSecondQuotedPhraseIgnored(t *testing.T) {
	p, _ := newTestParser(t)

	result := p.Process(context.Background(), `time taylor poulsen "Main St" 9:00am 5:00pm 1 0 "north side"`, sender)
	if result.Kind != Success {
		t.Fatalf("Kind = %s, want success (code %s)", result.Kind, result.Code)
	}
	if result.Submitted.Location != "Main St" {
		t.Errorf("Location = %q, want %q", result.Submitted.Location, "Main St")
	}
}

func TestProcessNonASCIITimeToken(t *testing.T) {
	p, store := newTestParser(t)

	got := p.Process(context.Background(), "time taylor poulsen \u212a:\u212a 5pm 1", sender)
	if got.Kind != Failure || got.Code != TimeFormatException {
		t.Fatalf("result = %s/%s, want failure/TimeFormatException", got.Kind, got.Code)
	}
	if store.calls != 0 {
		t.Errorf("upsert calls = %d, want 0", store.calls)
	}
}

func TestProcessUnrecognized(t *testing.T) {
	p, store := newTestParser(t)

	for _, msg := range []string{
		"draw taylor poulsen 100",
		"",
		"   ",
		"timesheet taylor poulsen 9am 5pm 1",
		"hello there, help",
	} {
		if got := p.Process(context.Background(), msg, sender); got.Kind != Unrecognized {
			t.Errorf("Process(%q) Kind = %s, want unrecognized", msg, got.Kind)
		}
	}
	if store.calls != 0 {
		t.Errorf("upsert calls = %d, want 0", store.calls)
	}
}

func TestProcessHelp(t *testing.T) {
	p, store := newTestParser(t)

	for _, msg := range []string{
		"time help",
		"Hours HELP",
		"time taylor poulsen 9:00am 5:00pm 1 help",
		"time taylor poulsen help",
	} {
		if got := p.Process(context.Background(), msg, sender); got.Kind != Help {
			t.Errorf("Process(%q) Kind = %s, want help", msg, got.Kind)
		}
	}
	if store.calls != 0 {
		t.Errorf("upsert calls = %d, want 0", store.calls)
	}
}

func TestProcessFailures(t *testing.T) {
	tests := []struct {
		message string
		want    ErrorCode
	}{
		{"time taylor poulsen 9:00am", TooFewParameters},
		{"time", TooFewParameters},
		{"time taylor poulsen 9:00am 5:00pm 1 2 3", TooManyParameters},
		{"time jordan smith 9:00am 5:00pm 1", EmployeeNotFound},
		{"time taylor poulsen 13:00pm 5:00pm 1", HoursError},
		{"time taylor poulsen 9:00xm 5:00pm 1", MeridiemError},
		{"time taylor poulsen 9:00am 5:61pm 1", MinutesError},
		{"time taylor poulsen 5:00pm 9:00am 0 0", IllegalTimeError},
		{"time taylor poulsen 9:00am 5:00pm abc 0", LunchError},
		{"time taylor poulsen 9:00am 5:00pm 1 lots", ExtraError},
		{"time taylor poulsen 9 5:00pm 1", TimeFormatException},
		{`time taylor poulsen 9am "Main St" 1`, TooFewParameters},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			p, store := newTestParser(t)
			got := p.Process(context.Background(), tt.message, sender)
			if got.Kind != Failure {
				t.Fatalf("Kind = %s, want failure", got.Kind)
			}
			if got.Code != tt.want {
				t.Errorf("Code = %s, want %s", got.Code, tt.want)
			}
			if got.Submitted != nil {
				t.Errorf("Submitted = %+v, want nil on failure", got.Submitted)
			}
			if store.calls != 0 {
				t.Errorf("upsert calls = %d, want 0", store.calls)
			}
		})
	}
}

func TestProcessStorageErrors(t *testing.T) {
	p, store := newTestParser(t)
	store.err = errors.New("database is locked")

	got := p.Process(context.Background(), "time taylor poulsen 9:00am 5:00pm 1", sender)
	if got.Kind != Failure || got.Code != StorageError {
		t.Fatalf("result = %s/%s, want failure/StorageError", got.Kind, got.Code)
	}
	if !strings.Contains(got.Detail, "database is locked") {
		t.Errorf("Detail = %q, want the store error", got.Detail)
	}

	denver, _ := time.LoadLocation("America/Denver")
	dir := newFakeDirectory()
	dir.err = errors.New("connection reset")
	p = NewParser(dir, ledger.New(ledger.NewMemoryStore(), 0), denver)

	got = p.Process(context.Background(), "time taylor poulsen 9:00am 5:00pm 1", sender)
	if got.Kind != Failure || got.Code != StorageError {
		t.Fatalf("result = %s/%s, want failure/StorageError", got.Kind, got.Code)
	}
}

func TestExtractLocation(t *testing.T) {
	location, rest := extractLocation(`time a b 9am 5pm 1 "North Lot"`)
	if location != "North Lot" {
		t.Errorf("location = %q", location)
	}
	if strings.Contains(rest, "North") {
		t.Errorf("rest still contains location: %q", rest)
	}

	location, rest = extractLocation(`time "North Lot" a b 9am 5pm 1 "Gate 4"`)
	if location != "North Lot" {
		t.Errorf("location = %q, want the first quoted phrase", location)
	}
	if strings.Contains(rest, "Gate") || len(strings.Fields(rest)) != 6 {
		t.Errorf("rest should drop every quoted phrase: %q", rest)
	}

	location, rest = extractLocation("time a b 9am 5pm 1")
	if location != "" || rest != "time a b 9am 5pm 1" {
		t.Errorf("extractLocation without quotes = %q, %q", location, rest)
	}
}
