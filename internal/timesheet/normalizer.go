package timesheet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionEntry is one raw day/hours/notes triple as received from the
// client. Hours arrive as a string so fractional values survive JSON
// round-tripping without float noise; decimal parsing happens here.
type SubmissionEntry struct {
	Date  string   `json:"date"`
	Hours string   `json:"hours"`
	Notes []string `json:"notes"`
}

// SubmissionItem groups raw entries under one task and job.
type SubmissionItem struct {
	TaskUUID string            `json:"task_uuid"`
	JobID    string            `json:"job_id"`
	Entries  []SubmissionEntry `json:"entries"`
}

var sixty = decimal.NewFromInt(60)

// NormalizeItem converts one submission item into zero or more canonical
// entries: one per (date, hours, notes) triple. Dates must parse as
// YYYY-MM-DD, hours as a non-negative decimal; minutes are rounded to
// the nearest whole minute and notes joined by newline. The first
// malformed entry aborts the whole item with a *ValidationError.
func NormalizeItem(staffUUID string, item SubmissionItem) ([]Entry, error) {
	out := make([]Entry, 0, len(item.Entries))
	for _, raw := range item.Entries {
		date, err := time.ParseInLocation("2006-01-02", raw.Date, time.UTC)
		if err != nil {
			return nil, &ValidationError{Field: "date", Value: raw.Date, Reason: "must be YYYY-MM-DD"}
		}
		hours, err := decimal.NewFromString(strings.TrimSpace(raw.Hours))
		if err != nil {
			return nil, &ValidationError{Field: "hours", Value: raw.Hours, Reason: "must be a decimal number"}
		}
		if hours.IsNegative() {
			return nil, &ValidationError{Field: "hours", Value: raw.Hours, Reason: "must not be negative"}
		}
		out = append(out, Entry{
			StaffUUID: staffUUID,
			TaskUUID:  item.TaskUUID,
			JobID:     item.JobID,
			Date:      date,
			Minutes:   int(hours.Mul(sixty).Round(0).IntPart()),
			Note:      strings.Join(raw.Notes, "\n"),
		})
	}
	return out, nil
}
