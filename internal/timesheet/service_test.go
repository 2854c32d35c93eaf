package timesheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomatrix/timekeeper/internal/model"
)

func newTestService(store *memStore) *Service {
	res := &memResolvers{
		staff: map[string]model.Staff{"staff-1": {UUID: "staff-1", Name: "Ada Price"}},
		tasks: map[string]model.Task{
			"task-1": {UUID: "task-1", Name: "Bookkeeping", Billable: true},
			"task-2": {UUID: "task-2", Name: "Filing", Billable: false},
		},
		jobs: map[string]model.Job{"J001": {JobID: "J001", Name: "Annual accounts"}},
	}
	return NewService(store, res, res, res)
}

func TestSubmitTimesheetAcceptsBatch(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	res, err := svc.SubmitTimesheet(context.Background(), "staff-1", []SubmissionItem{
		{TaskUUID: "task-1", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "2025-01-06", Hours: "1.5", Notes: []string{"setup"}},
			{Date: "2025-01-07", Hours: "2"},
		}},
		{TaskUUID: "task-2", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "2025-01-06", Hours: "0.5"},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Accepted)
	assert.Empty(t, res.Errors)
	assert.Len(t, store.records, 3)
}

func TestSubmitTimesheetIsolatesItemFailures(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	res, err := svc.SubmitTimesheet(context.Background(), "staff-1", []SubmissionItem{
		{TaskUUID: "task-1", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "2025-01-06", Hours: "1"},
		}},
		{TaskUUID: "task-1", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "not-a-date", Hours: "1"},
		}},
		{TaskUUID: "missing-task", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "2025-01-07", Hours: "1"},
		}},
		{TaskUUID: "task-2", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "2025-01-08", Hours: "1"},
		}},
	})
	require.NoError(t, err)

	// Items 0 and 3 land; items 1 and 2 are reported and skipped.
	assert.Equal(t, 2, res.Accepted)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.Equal(t, 2, res.Errors[1].Index)
	assert.Equal(t, "missing-task", res.Errors[1].TaskUUID)
	assert.Len(t, store.records, 2)
}

func TestSubmitTimesheetPartialItemKeepsCommittedEntries(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	// First entry of the item commits; the second fails validation at
	// normalize time, so the whole item is rejected before any write.
	res, err := svc.SubmitTimesheet(context.Background(), "staff-1", []SubmissionItem{
		{TaskUUID: "task-1", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "2025-01-06", Hours: "1"},
			{Date: "2025-01-07", Hours: "-2"},
		}},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Accepted)
	require.Len(t, res.Errors, 1)
	assert.Empty(t, store.records)
}

func TestSubmitTimesheetUpdateNotDuplicate(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	submit := func(hours string) SubmitResult {
		res, err := svc.SubmitTimesheet(context.Background(), "staff-1", []SubmissionItem{
			{TaskUUID: "task-1", JobID: "J001", Entries: []SubmissionEntry{
				{Date: "2025-01-06", Hours: hours},
			}},
		})
		require.NoError(t, err)
		return res
	}

	submit("1.0")
	require.Len(t, store.records, 1)
	assert.Equal(t, 60, store.records[0].Minutes)

	submit("2.0")
	require.Len(t, store.records, 1)
	assert.Equal(t, 120, store.records[0].Minutes)

	// Identical resubmission causes zero writes.
	updatesBefore := store.updates
	submit("2.0")
	assert.Equal(t, updatesBefore, store.updates)
	assert.Equal(t, 1, store.creates)
}

func TestSubmitTimesheetStopsOnCancelledContext(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.SubmitTimesheet(ctx, "staff-1", []SubmissionItem{
		{TaskUUID: "task-1", JobID: "J001", Entries: []SubmissionEntry{
			{Date: "2025-01-06", Hours: "1"},
		}},
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Accepted)
	assert.Empty(t, store.records)
}
