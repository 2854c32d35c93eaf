package timesheet

import (
	"context"
	"time"

	"github.com/neomatrix/timekeeper/internal/model"
)

// Entry is one canonical time entry produced by the Normalizer and
// consumed by the Reconciler. Dates carry no time component; they are
// normalized to midnight UTC.
type Entry struct {
	StaffUUID string
	TaskUUID  string
	JobID     string
	Date      time.Time
	Minutes   int
	Note      string
}

// Store is the persistence contract the engine needs. The MySQL
// repository implements it; tests substitute an in-memory fake.
//
// FindByNaturalKey returns (nil, nil) when no record matches, so the
// Reconciler can distinguish "absent" from a query failure. Create must
// return ErrConflict when the natural-key unique constraint rejects the
// insert, which is how concurrent creators of the same key are
// serialized by the store itself.
type Store interface {
	FindByNaturalKey(ctx context.Context, staffUUID, taskUUID, jobID string, date time.Time) (*model.Timesheet, error)
	Create(ctx context.Context, rec *model.Timesheet) error
	Update(ctx context.Context, rec *model.Timesheet) error
	QueryRange(ctx context.Context, staffUUID string, from, to time.Time) ([]model.Timesheet, error)
}

// StaffResolver looks up a staff record by UUID. A missing staff member
// is reported as (nil, nil), not as an error.
type StaffResolver interface {
	ResolveStaff(ctx context.Context, uuid string) (*model.Staff, error)
}

// TaskResolver looks up tasks by UUID. ResolveTasks is the bulk variant
// the Aggregator uses so a week's report costs one lookup instead of one
// per entry; UUIDs that do not resolve are simply absent from the map.
type TaskResolver interface {
	ResolveTask(ctx context.Context, uuid string) (*model.Task, error)
	ResolveTasks(ctx context.Context, uuids []string) (map[string]model.Task, error)
}

// JobResolver looks up a job by its human-facing job number. A missing
// job is reported as (nil, nil); the Reconciler tolerates it and stores
// an empty job name.
type JobResolver interface {
	ResolveJob(ctx context.Context, jobID string) (*model.Job, error)
}

// WeekStartOf returns the Monday of the calendar week containing t,
// truncated to midnight UTC.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	return day.AddDate(0, 0, -offset)
}

// DayIndex returns the 0-based day offset of date within the week
// starting at weekStart. Both values are expected to be midnight UTC.
func DayIndex(weekStart, date time.Time) int {
	return int(date.Sub(weekStart).Hours() / 24)
}
