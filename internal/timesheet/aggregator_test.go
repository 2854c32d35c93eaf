package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomatrix/timekeeper/internal/model"
)

func seededAggregator(records ...*model.Timesheet) (*Aggregator, *memStore) {
	store := &memStore{records: records}
	res := &memResolvers{
		tasks: map[string]model.Task{
			"task-bill":    {UUID: "task-bill", Name: "Advisory", Billable: true},
			"task-nonbill": {UUID: "task-nonbill", Name: "Admin", Billable: false},
		},
	}
	return NewAggregator(store, res), store
}

func ts(taskUUID, jobID, day string, minutes int, note string) *model.Timesheet {
	return &model.Timesheet{
		UUID:      jobID + "-" + taskUUID + "-" + day + "-" + note,
		StaffUUID: "staff-1",
		TaskUUID:  taskUUID,
		TaskName:  "name of " + taskUUID,
		JobID:     jobID,
		JobName:   "name of " + jobID,
		EntryDate: date(day),
		Minutes:   minutes,
		Note:      note,
	}
}

func TestWeeklyHoursDayBucketing(t *testing.T) {
	agg, _ := seededAggregator(ts("task-bill", "J001", "2025-01-08", 90, ""))

	rep, err := agg.WeeklyHours(context.Background(), "staff-1", date("2025-01-06"))
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", rep.WeekStart)
	assert.Equal(t, "2025-01-12", rep.WeekEnd)
	require.Len(t, rep.DailyHours, 7)
	assert.Equal(t, 1.5, rep.DailyHours[2].Billable) // Wednesday slot
	assert.Equal(t, "Wed", rep.DailyHours[2].Day)
	assert.Equal(t, "2025-01-08", rep.DailyHours[2].Date)
	assert.Zero(t, rep.DailyHours[0].Total)
}

func TestWeeklyHoursBillableSplit(t *testing.T) {
	agg, _ := seededAggregator(
		ts("task-bill", "J001", "2025-01-06", 120, ""),
		ts("task-nonbill", "J001", "2025-01-06", 60, ""),
	)

	rep, err := agg.WeeklyHours(context.Background(), "staff-1", date("2025-01-06"))
	require.NoError(t, err)

	day := rep.DailyHours[0]
	assert.Equal(t, 2.0, day.Billable)
	assert.Equal(t, 1.0, day.NonBillable)
	assert.Equal(t, 3.0, day.Total)
}

func TestWeeklyHoursUnknownTaskDefaultsNonBillable(t *testing.T) {
	agg, _ := seededAggregator(ts("task-deleted", "J001", "2025-01-06", 60, ""))

	rep, err := agg.WeeklyHours(context.Background(), "staff-1", date("2025-01-06"))
	require.NoError(t, err)

	assert.Zero(t, rep.DailyHours[0].Billable)
	assert.Equal(t, 1.0, rep.DailyHours[0].NonBillable)
}

func TestWeeklyHoursEmptyWeek(t *testing.T) {
	agg, _ := seededAggregator()

	rep, err := agg.WeeklyHours(context.Background(), "staff-1", date("2025-01-06"))
	require.NoError(t, err)

	require.Len(t, rep.DailyHours, 7)
	for _, d := range rep.DailyHours {
		assert.Zero(t, d.Billable)
		assert.Zero(t, d.NonBillable)
		assert.Zero(t, d.Total)
	}
	assert.Empty(t, rep.TaskHours)
}

func TestWeeklyHoursTaskGridAccumulatesNotesInOrder(t *testing.T) {
	agg, _ := seededAggregator(
		ts("task-bill", "J001", "2025-01-07", 30, "morning call"),
		ts("task-bill", "J001", "2025-01-07", 45, "afternoon review"),
		ts("task-bill", "J001", "2025-01-09", 60, ""),
	)

	rep, err := agg.WeeklyHours(context.Background(), "staff-1", date("2025-01-06"))
	require.NoError(t, err)

	row, ok := rep.TaskHours["J001_task-bill"]
	require.True(t, ok)
	assert.Equal(t, "name of J001", row.JobName)
	assert.Equal(t, "name of task-bill", row.TaskName)
	assert.Equal(t, 1.25, row.DailyHours[1].Hours)
	assert.Equal(t, []string{"morning call", "afternoon review"}, row.DailyHours[1].Notes)
	// An empty note contributes hours but no notes entry.
	assert.Equal(t, 1.0, row.DailyHours[3].Hours)
	assert.Empty(t, row.DailyHours[3].Notes)
}

func TestWeeklyHoursSeparatesJobTaskPairs(t *testing.T) {
	agg, _ := seededAggregator(
		ts("task-bill", "J001", "2025-01-06", 60, ""),
		ts("task-bill", "J002", "2025-01-06", 30, ""),
	)

	rep, err := agg.WeeklyHours(context.Background(), "staff-1", date("2025-01-06"))
	require.NoError(t, err)

	require.Len(t, rep.TaskHours, 2)
	assert.Equal(t, 1.0, rep.TaskHours["J001_task-bill"].DailyHours[0].Hours)
	assert.Equal(t, 0.5, rep.TaskHours["J002_task-bill"].DailyHours[0].Hours)
}

func TestWeeklyHoursIgnoresEntriesOutsideWindow(t *testing.T) {
	agg, _ := seededAggregator(
		ts("task-bill", "J001", "2025-01-05", 60, ""), // Sunday before
		ts("task-bill", "J001", "2025-01-13", 60, ""), // Monday after
		ts("task-bill", "J001", "2025-01-12", 60, ""), // Sunday, last day in
	)

	rep, err := agg.WeeklyHours(context.Background(), "staff-1", date("2025-01-06"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, rep.DailyHours[6].Billable)
	var total float64
	for _, d := range rep.DailyHours {
		total += d.Total
	}
	assert.Equal(t, 1.0, total)
}

func TestWeekStartOf(t *testing.T) {
	// 2025-01-08 is a Wednesday; its week starts Monday 2025-01-06.
	wed := time.Date(2025, 1, 8, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, date("2025-01-06"), WeekStartOf(wed))
	// A Monday maps to itself, a Sunday to the preceding Monday.
	assert.Equal(t, date("2025-01-06"), WeekStartOf(date("2025-01-06")))
	assert.Equal(t, date("2025-01-06"), WeekStartOf(date("2025-01-12")))
}

func TestDayIndex(t *testing.T) {
	start := date("2025-01-06")
	assert.Equal(t, 0, DayIndex(start, date("2025-01-06")))
	assert.Equal(t, 2, DayIndex(start, date("2025-01-08")))
	assert.Equal(t, 6, DayIndex(start, date("2025-01-12")))
	assert.Equal(t, -1, DayIndex(start, date("2025-01-05")))
	assert.Equal(t, 7, DayIndex(start, date("2025-01-13")))
}
