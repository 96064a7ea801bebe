// Package reply renders command results as the text sent back to the
// sender.
package reply

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/timebot/internal/command"
)

const (
	Usage   = "Usage: Time <first name> <last name> <start time> <end time> <subtracted hours(lunch)> [<additional hours(drive time)>]\nExample:"
	Example = "Time Taylor Poulsen 11:46am 5:04pm 1.25 3.6"

	// Apology is the only reply for faults that are not validation failures.
	Apology = "Encountered an unexpected error. Check your format and try again."

	timeError = "Error. Time formatted incorrectly."
)

var failureMessages = map[command.ErrorCode]string{
	command.TooFewParameters:    timeError + " Too few parameters.",
	command.TooManyParameters:   timeError + " Too many parameters.",
	command.EmployeeNotFound:    "Error. Employee not found.",
	command.HoursError:          timeError + " Hours spot is wrong.",
	command.MeridiemError:       timeError + " Meridiem is wrong. (am/pm)",
	command.MinutesError:        timeError + " Minutes spot is wrong.",
	command.IllegalTimeError:    timeError + " End time is before start time...",
	command.LunchError:          "Error. Subtracted hours formatted incorrectly.",
	command.ExtraError:          "Error. Additional hours formatted incorrectly.",
	command.TimeFormatException: timeError,
	command.StorageError:        "Sorry, your hours could not be saved right now. Please try again later.",
}

// UsageText is the usage block followed by the example line.
func UsageText() string {
	return Usage + "\n" + Example
}

// Message returns the fixed text for a failure code.
func Message(code command.ErrorCode) string {
	if msg, ok := failureMessages[code]; ok {
		return msg
	}
	return Apology
}

// Format returns the reply for result. Unrecognized results yield an empty
// string, meaning nothing is sent.
func Format(result command.Result) string {
	switch result.Kind {
	case command.Help:
		return UsageText()
	case command.Failure:
		msg := Message(result.Code)
		if strings.HasPrefix(msg, "Error") {
			return msg + "\n" + UsageText()
		}
		return msg
	case command.Success:
		s := result.Submitted
		if s == nil {
			return Apology
		}
		if s.IsUpdate {
			return fmt.Sprintf("Updated hours: %s to %s for %s", Hours(s.PreviousHours), Hours(s.Hours), s.WorkerName)
		}
		return fmt.Sprintf("%s hours were submitted for %s", Hours(s.Hours), s.WorkerName)
	default:
		return ""
	}
}

// Hours renders an hour count with two decimal places.
func Hours(d decimal.Decimal) string {
	return d.StringFixed(2)
}
