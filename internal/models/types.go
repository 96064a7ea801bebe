package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DayFormat = "2006-01-02"

type Worker struct {
	ID           int64     `json:"id" db:"id" yaml:"-"`
	FirstName    string    `json:"first_name" db:"first_name" yaml:"first_name"`
	LastName     string    `json:"last_name" db:"last_name" yaml:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone" yaml:"phone,omitempty"`
	Email        *string   `json:"email,omitempty" db:"email" yaml:"email,omitempty"`
	SupervisorID *int64    `json:"supervisor_id,omitempty" db:"supervisor_id" yaml:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" yaml:"-"`
}

// Submission is one worker's recorded hours for one calendar day. A later
// submission for the same (WorkerID, Day) replaces the earlier one.
type Submission struct {
	ID            string              `json:"id" db:"id"`
	WorkerID      int64               `json:"worker_id" db:"worker_id"`
	Day           time.Time           `json:"day" db:"day"`
	Hours         decimal.Decimal     `json:"hours" db:"hours"`
	PreviousHours decimal.NullDecimal `json:"previous_hours" db:"previous_hours"`
	Message       string              `json:"message" db:"message"`
	Location      *string             `json:"location,omitempty" db:"location"`
	Sender        *string             `json:"sender,omitempty" db:"sender"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" db:"updated_at"`
}

func NewUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// DayOf returns the calendar date of t as seen in loc, as midnight UTC.
func DayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date. Longer values such as RFC 3339
// timestamps are cut to their date part.
func ParseDay(s string) (time.Time, error) {
	if len(s) > len(DayFormat) {
		s = s[:len(DayFormat)]
	}
	day, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}
	return day, nil
}
