// Package timecard builds per-worker pay period summaries from recorded
// submissions.
package timecard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/timebot/internal/models"
)

type DayEntry struct {
	Day      time.Time
	Hours    decimal.Decimal
	Location string
}

// TimeCard covers one worker for an inclusive range of days.
type TimeCard struct {
	WorkerID   int64
	Name       string
	Email      string
	Phone      string
	Start      time.Time
	End        time.Time
	Days       []DayEntry
	TotalHours decimal.Decimal
	PayDay     time.Time
}

func New(workerID int64, name string, start, end time.Time) (*TimeCard, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("end date cannot be before start date")
	}

	tc := &TimeCard{
		WorkerID:   workerID,
		Name:       name,
		Start:      start,
		End:        end,
		TotalHours: decimal.Zero,
		PayDay:     ComputePayday(end),
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		tc.Days = append(tc.Days, DayEntry{Day: day, Hours: decimal.Zero})
	}
	return tc, nil
}

// ComputePayday returns the second Friday after the pay period ends.
func ComputePayday(periodEnd time.Time) time.Time {
	end := truncateDay(periodEnd)
	daysUntilFriday := (int(time.Friday) - int(end.Weekday()) + 7) % 7
	if daysUntilFriday == 0 {
		daysUntilFriday = 7
	}
	return end.AddDate(0, 0, daysUntilFriday+7)
}

// AddHours adds hours to day, which must fall inside the card's range.
func (tc *TimeCard) AddHours(day time.Time, hours decimal.Decimal, location string) error {
	day = truncateDay(day)
	if day.Before(tc.Start) || day.After(tc.End) {
		return fmt.Errorf("date %s not in pay period", day.Format(models.DayFormat))
	}

	i := int(day.Sub(tc.Start).Hours() / 24)
	entry := &tc.Days[i]
	entry.Hours = entry.Hours.Add(hours)
	if location != "" {
		entry.Location = location
	}
	tc.TotalHours = tc.TotalHours.Add(hours)
	return nil
}

func (tc *TimeCard) String() string {
	var sb strings.Builder

	sb.WriteString(tc.Name + "\n")
	for _, line := range tc.contactLines() {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%11s|%5s|%7s|%s\n", "Date", "Day", "Hours", "Job Name"))
	sb.WriteString(fmt.Sprintf("%s+%s+%s+%s\n", strings.Repeat("-", 11), strings.Repeat("-", 5), strings.Repeat("-", 7), strings.Repeat("-", 20)))

	for _, entry := range tc.Days {
		location := entry.Location
		if location == "" {
			location = "-"
		}
		sb.WriteString(fmt.Sprintf("%10s | %4s| %6s| %s\n",
			entry.Day.Format(models.DayFormat),
			entry.Day.Format("Mon"),
			entry.Hours.StringFixed(2),
			location))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total hours:  %s\n", tc.TotalHours.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Payday:  %s\n", tc.PayDay.Format(models.DayFormat)))

	return sb.String()
}

func (tc *TimeCard) contactLines() []string {
	var lines []string
	if tc.Phone != "" {
		lines = append(lines, "Phone: "+tc.Phone)
	}
	if tc.Email != "" {
		lines = append(lines, "Email: "+tc.Email)
	}
	return lines
}

// FileName is the PDF name used when cards are written to a directory.
func (tc *TimeCard) FileName() string {
	slug := strings.ToLower(strings.Join(strings.Fields(tc.Name), "_"))
	return fmt.Sprintf("timecard_%s_%s_%s.pdf", slug, tc.Start.Format(models.DayFormat), tc.End.Format(models.DayFormat))
}

func (tc *TimeCard) WritePDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Time Card - %s", tc.Name))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	for _, line := range tc.contactLines() {
		pdf.Cell(40, 8, line)
		pdf.Ln(8)
	}
	pdf.Cell(40, 8, fmt.Sprintf("Pay Period: %s to %s", tc.Start.Format(models.DayFormat), tc.End.Format(models.DayFormat)))
	pdf.Ln(8)
	pdf.Cell(40, 8, fmt.Sprintf("Payday: %s", tc.PayDay.Format(models.DayFormat)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 8, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, "Hours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 8, "Job Name", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, entry := range tc.Days {
		pdf.CellFormat(35, 7, entry.Day.Format(models.DayFormat), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, entry.Day.Format("Mon"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, entry.Hours.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(110, 7, entry.Location, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(55, 8, "Total hours:")
	pdf.CellFormat(25, 8, tc.TotalHours.StringFixed(2), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

// Build groups submissions into one card per worker, in the order workers
// first appear. names resolves a worker's display name.
func Build(start, end time.Time, subs []*models.Submission, names func(workerID int64) (string, error)) ([]*TimeCard, error) {
	var cards []*TimeCard
	byWorker := make(map[int64]*TimeCard)

	for _, sub := range subs {
		tc, ok := byWorker[sub.WorkerID]
		if !ok {
			name, err := names(sub.WorkerID)
			if err != nil {
				return nil, fmt.Errorf("failed to get name for worker %d: %w", sub.WorkerID, err)
			}
			tc, err = New(sub.WorkerID, name, start, end)
			if err != nil {
				return nil, err
			}
			byWorker[sub.WorkerID] = tc
			cards = append(cards, tc)
		}

		location := ""
		if sub.Location != nil {
			location = *sub.Location
		}
		if err := tc.AddHours(sub.Day, sub.Hours, location); err != nil {
			return nil, fmt.Errorf("failed to add hours for worker %d: %w", sub.WorkerID, err)
		}
	}

	return cards, nil
}

// PreviousWeek returns Monday through Sunday of the week before the one
// containing t.
func PreviousWeek(t time.Time) (time.Time, time.Time) {
	day := truncateDay(t)
	daysFromMonday := int(day.Weekday()-time.Monday+7) % 7
	monday := day.AddDate(0, 0, -daysFromMonday-7)
	return monday, monday.AddDate(0, 0, 6)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
