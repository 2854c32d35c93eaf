package timesheet

import (
	"context"
	"time"
)

// DayTotal is one slot of the weekly daily summary.
type DayTotal struct {
	Date        string  `json:"date"`
	Day         string  `json:"day"`
	Billable    float64 `json:"billable"`
	NonBillable float64 `json:"non_billable"`
	Total       float64 `json:"total"`
}

// TaskDay is one day's accumulation for a (job, task) pair.
type TaskDay struct {
	Date  string   `json:"date"`
	Hours float64  `json:"hours"`
	Notes []string `json:"notes"`
}

// TaskHours is the weekly grid row for one (job, task) pair.
type TaskHours struct {
	JobID      string    `json:"job_id"`
	JobName    string    `json:"job_name"`
	TaskUUID   string    `json:"task_uuid"`
	TaskName   string    `json:"task_name"`
	DailyHours []TaskDay `json:"daily_hours"`
}

// WeeklyReport is the aggregation output for one staff member and one
// Monday-to-Sunday window.
type WeeklyReport struct {
	WeekStart  string                `json:"week_start"`
	WeekEnd    string                `json:"week_end"`
	DailyHours []DayTotal            `json:"daily_hours"`
	TaskHours  map[string]*TaskHours `json:"task_hours"`
}

// Aggregator produces weekly reporting views over stored time entries.
// It is a pure read-transform pipeline: no state survives a call, and a
// reconciliation committing mid-aggregation may or may not be reflected.
type Aggregator struct {
	store Store
	tasks TaskResolver
}

// NewAggregator returns an Aggregator bound to the given store and task
// resolver.
func NewAggregator(store Store, tasks TaskResolver) *Aggregator {
	return &Aggregator{store: store, tasks: tasks}
}

// WeeklyHours builds the report for staffUUID and the week starting at
// weekStart (a Monday, midnight UTC). A zero weekStart selects the
// Monday of the current calendar week. A week with no entries yields
// seven zero-filled slots and an empty task grid.
func (a *Aggregator) WeeklyHours(ctx context.Context, staffUUID string, weekStart time.Time) (*WeeklyReport, error) {
	if weekStart.IsZero() {
		weekStart = WeekStartOf(time.Now())
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	// Load every entry in [weekStart, weekEnd], both ends inclusive.
	entries, err := a.store.QueryRange(ctx, staffUUID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	// Resolve billability once per distinct task. Tasks that no longer
	// resolve default to non-billable rather than failing the report.
	billable := map[string]bool{}
	if len(entries) > 0 {
		seen := map[string]bool{}
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			if !seen[e.TaskUUID] {
				seen[e.TaskUUID] = true
				ids = append(ids, e.TaskUUID)
			}
		}
		tasks, err := a.tasks.ResolveTasks(ctx, ids)
		if err != nil {
			return nil, err
		}
		for id, t := range tasks {
			billable[id] = t.Billable
		}
	}

	report := &WeeklyReport{
		WeekStart:  weekStart.Format("2006-01-02"),
		WeekEnd:    weekEnd.Format("2006-01-02"),
		DailyHours: make([]DayTotal, 7),
		TaskHours:  map[string]*TaskHours{},
	}
	for i := range report.DailyHours {
		d := weekStart.AddDate(0, 0, i)
		report.DailyHours[i].Date = d.Format("2006-01-02")
		report.DailyHours[i].Day = d.Format("Mon")
	}

	for _, e := range entries {
		idx := DayIndex(weekStart, e.EntryDate)
		if idx < 0 || idx > 6 {
			// The range filter should make this impossible; guard the
			// slot arrays anyway.
			continue
		}
		hours := float64(e.Minutes) / 60.0

		if billable[e.TaskUUID] {
			report.DailyHours[idx].Billable += hours
		} else {
			report.DailyHours[idx].NonBillable += hours
		}

		key := e.JobID + "_" + e.TaskUUID
		row, ok := report.TaskHours[key]
		if !ok {
			row = &TaskHours{
				JobID:      e.JobID,
				JobName:    e.JobName,
				TaskUUID:   e.TaskUUID,
				TaskName:   e.TaskName,
				DailyHours: make([]TaskDay, 7),
			}
			for i := range row.DailyHours {
				row.DailyHours[i].Date = weekStart.AddDate(0, 0, i).Format("2006-01-02")
				row.DailyHours[i].Notes = []string{}
			}
			report.TaskHours[key] = row
		}
		row.DailyHours[idx].Hours += hours
		if e.Note != "" {
			row.DailyHours[idx].Notes = append(row.DailyHours[idx].Notes, e.Note)
		}
	}

	for i := range report.DailyHours {
		report.DailyHours[i].Total = report.DailyHours[i].Billable + report.DailyHours[i].NonBillable
	}
	return report, nil
}
