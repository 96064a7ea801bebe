// Package timecalc parses 12-hour clock times and turns a start/end window
// into a decimal count of worked hours.
package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ErrTimeFormat  = errors.New("time formatted incorrectly")
	ErrHours       = errors.New("hours spot is wrong")
	ErrMeridiem    = errors.New("meridiem is wrong (am/pm)")
	ErrMinutes     = errors.New("minutes spot is wrong")
	ErrIllegalTime = errors.New("end time is before start time")
	ErrLunch       = errors.New("subtracted hours formatted incorrectly")
	ErrExtra       = errors.New("additional hours formatted incorrectly")
)

// ClockTime is a time of day on a 24-hour clock. Values only come out of
// ParseClockTime.
type ClockTime struct {
	Hour   int
	Minute int
}

// Minutes returns the minutes elapsed since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClockTime parses tokens like "9:12am", "12:30pm", "5pm" or "11AM".
func ParseClockTime(token string) (ClockTime, error) {
	for i := 0; i < len(token); i++ {
		if token[i] >= utf8.RuneSelf {
			return ClockTime{}, ErrTimeFormat
		}
	}

	n := len(token)
	hasColon := strings.Contains(token, ":")
	switch {
	case hasColon && (n == 6 || n == 7) && strings.Count(token, ":") == 1:
	case !hasColon && (n == 3 || n == 4):
	default:
		return ClockTime{}, ErrTimeFormat
	}

	lower := strings.ToLower(token)
	suffix := lower[n-2:]
	body := lower[:n-2]

	hourPart, minutePart := body, ""
	if hasColon {
		hourPart, minutePart, _ = strings.Cut(body, ":")
	}

	hour, ok := parseDigits(hourPart)
	if !ok || hour < 1 || hour > 12 {
		return ClockTime{}, ErrHours
	}

	switch suffix {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	default:
		return ClockTime{}, ErrMeridiem
	}

	minute := 0
	if hasColon {
		if len(minutePart) != 2 {
			return ClockTime{}, ErrMinutes
		}
		minute, ok = parseDigits(minutePart)
		if !ok || minute > 59 {
			return ClockTime{}, ErrMinutes
		}
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// parseDigits accepts only ASCII digits, so signs and spaces never reach
// strconv.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
