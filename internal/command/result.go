package command

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorCode identifies a user-facing failure. Each code has exactly one
// reply text.
type ErrorCode int

const (
	TooFewParameters ErrorCode = iota + 1
	TooManyParameters
	EmployeeNotFound
	HoursError
	MeridiemError
	MinutesError
	IllegalTimeError
	LunchError
	ExtraError
	TimeFormatException
	StorageError
)

var errorCodeNames = map[ErrorCode]string{
	TooFewParameters:    "TooFewParameters",
	TooManyParameters:   "TooManyParameters",
	EmployeeNotFound:    "EmployeeNotFound",
	HoursError:          "HoursError",
	MeridiemError:       "MeridiemError",
	MinutesError:        "MinutesError",
	IllegalTimeError:    "IllegalTimeError",
	LunchError:          "LunchError",
	ExtraError:          "ExtraError",
	TimeFormatException: "TimeFormatException",
	StorageError:        "StorageError",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UnknownError"
}

type Kind int

const (
	// Unrecognized messages are not addressed to the bot and get no reply.
	Unrecognized Kind = iota
	Help
	Success
	Failure
)

func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized"
	case Help:
		return "help"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Submitted describes a recorded time submission.
type Submitted struct {
	WorkerID      int64
	WorkerName    string
	Day           time.Time
	Hours         decimal.Decimal
	IsUpdate      bool
	PreviousHours decimal.Decimal
	Location      string
}

// Result is the outcome of processing one message. Submitted is set only
// for Success; Code and Detail only for Failure.
type Result struct {
	Kind      Kind
	Submitted *Submitted
	Code      ErrorCode
	Detail    string
}

func unrecognized() Result {
	return Result{Kind: Unrecognized}
}

func help() Result {
	return Result{Kind: Help}
}

func success(s *Submitted) Result {
	return Result{Kind: Success, Submitted: s}
}

func failure(code ErrorCode, detail string) Result {
	return Result{Kind: Failure, Code: code, Detail: detail}
}
