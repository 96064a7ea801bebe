package timecalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const HoursDecimalPlaces = 2

// Exponent bounds for hour adjustments. Rescaling cost grows with the
// exponent, so values like "1e20000000" are refused before any arithmetic.
const (
	minHoursExponent = -10
	maxHoursExponent = 2
)

var minutesPerHour = decimal.NewFromInt(60)

// Calculate returns the hours worked between start and end, minus the
// subtracted hours in less plus the additional hours in more. An empty
// more counts as zero. The result is rounded half away from zero to two
// places and may be negative when less exceeds the worked span.
func Calculate(start, end, less, more string) (decimal.Decimal, error) {
	startTime, err := ParseClockTime(start)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid start time: %w", err)
	}

	endTime, err := ParseClockTime(end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid end time: %w", err)
	}

	if endTime.Minutes() < startTime.Minutes() {
		return decimal.Zero, ErrIllegalTime
	}

	subtract, ok := parseHours(less)
	if !ok || subtract.IsNegative() {
		return decimal.Zero, ErrLunch
	}

	add := decimal.Zero
	if more != "" {
		if add, ok = parseHours(more); !ok {
			return decimal.Zero, ErrExtra
		}
	}

	worked := decimal.NewFromInt(int64(endTime.Minutes() - startTime.Minutes())).Div(minutesPerHour)
	return worked.Sub(subtract).Add(add).Round(HoursDecimalPlaces), nil
}

func parseHours(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < minHoursExponent || exp > maxHoursExponent {
		return decimal.Zero, false
	}
	return d, true
}
