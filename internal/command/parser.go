// Package command interprets inbound text messages and turns time
// submissions into recorded hours.
package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jesses-code-adventures/timebot/internal/ledger"
	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/timecalc"
)

const (
	minTimeParameters = 6
	maxTimeParameters = 7
)

// Straight and curly double quotes; phones tend to send the latter.
var locationRegex = regexp.MustCompile(`["“”]([^"“”]+)["“”]`)

type Directory interface {
	LookupWorker(ctx context.Context, firstName, lastName string) (int64, bool, error)
	WorkerDisplayName(ctx context.Context, workerID int64) (string, error)
}

type Recorder interface {
	Submit(ctx context.Context, entry ledger.Entry) (ledger.Outcome, error)
}

// Parser holds no per-request state and is safe for concurrent use.
type Parser struct {
	directory Directory
	recorder  Recorder
	location  *time.Location
	now       func() time.Time
}

func NewParser(directory Directory, recorder Recorder, location *time.Location) *Parser {
	if location == nil {
		location = time.Local
	}
	return &Parser{
		directory: directory,
		recorder:  recorder,
		location:  location,
		now:       time.Now,
	}
}

// WithClock replaces the source of the current time, which decides the
// submission day.
func (p *Parser) WithClock(now func() time.Time) *Parser {
	p.now = now
	return p
}

// Process interprets a message body sent by sender.
func (p *Parser) Process(ctx context.Context, message, sender string) Result {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return unrecognized()
	}

	switch strings.ToLower(fields[0]) {
	case "time", "hours":
		if strings.Contains(strings.ToLower(message), "help") {
			return help()
		}
		return p.processTime(ctx, message, sender)
	default:
		return unrecognized()
	}
}

func (p *Parser) processTime(ctx context.Context, message, sender string) Result {
	location, body := extractLocation(message)

	parts := strings.Fields(body)
	if len(parts) < minTimeParameters {
		return failure(TooFewParameters, fmt.Sprintf("expected at least %d parameters, got %d", minTimeParameters, len(parts)))
	}
	if len(parts) > maxTimeParameters {
		return failure(TooManyParameters, fmt.Sprintf("expected at most %d parameters, got %d", maxTimeParameters, len(parts)))
	}

	firstName, lastName := parts[1], parts[2]
	workerID, found, err := p.directory.LookupWorker(ctx, firstName, lastName)
	if err != nil {
		return failure(StorageError, fmt.Sprintf("failed to look up worker: %v", err))
	}
	if !found {
		return failure(EmployeeNotFound, fmt.Sprintf("no worker named %s %s", firstName, lastName))
	}

	more := ""
	if len(parts) == maxTimeParameters {
		more = parts[6]
	}

	hours, err := timecalc.Calculate(parts[3], parts[4], parts[5], more)
	if err != nil {
		return failure(codeForCalculationError(err), err.Error())
	}

	name, err := p.directory.WorkerDisplayName(ctx, workerID)
	if err != nil {
		return failure(StorageError, fmt.Sprintf("failed to get worker name: %v", err))
	}

	day := models.DayOf(p.now(), p.location)
	outcome, err := p.recorder.Submit(ctx, ledger.Entry{
		WorkerID: workerID,
		Day:      day,
		Hours:    hours,
		Message:  message,
		Location: location,
		Sender:   sender,
	})
	if err != nil {
		return failure(StorageError, err.Error())
	}

	return success(&Submitted{
		WorkerID:      workerID,
		WorkerName:    name,
		Day:           day,
		Hours:         outcome.Hours,
		IsUpdate:      outcome.IsUpdate,
		PreviousHours: outcome.PreviousHours,
		Location:      location,
	})
}

// extractLocation returns the first quoted phrase as the location and the
// message with every quoted phrase removed.
func extractLocation(message string) (string, string) {
	match := locationRegex.FindStringSubmatch(message)
	if match == nil {
		return "", message
	}
	return strings.TrimSpace(match[1]), locationRegex.ReplaceAllString(message, " ")
}

func codeForCalculationError(err error) ErrorCode {
	switch {
	case errors.Is(err, timecalc.ErrHours):
		return HoursError
	case errors.Is(err, timecalc.ErrMeridiem):
		return MeridiemError
	case errors.Is(err, timecalc.ErrMinutes):
		return MinutesError
	case errors.Is(err, timecalc.ErrIllegalTime):
		return IllegalTimeError
	case errors.Is(err, timecalc.ErrLunch):
		return LunchError
	case errors.Is(err, timecalc.ErrExtra):
		return ExtraError
	default:
		return TimeFormatException
	}
}
