package timesheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomatrix/timekeeper/internal/model"
)

func newTestReconciler(store *memStore) (*Reconciler, *memResolvers) {
	res := &memResolvers{
		staff: map[string]model.Staff{"staff-1": {UUID: "staff-1", Name: "Ada Price"}},
		tasks: map[string]model.Task{"task-1": {UUID: "task-1", Name: "Bookkeeping", Billable: true}},
		jobs:  map[string]model.Job{"J001": {JobID: "J001", Name: "Annual accounts"}},
	}
	return NewReconciler(store, res, res, res), res
}

func entry(minutes int, note string) Entry {
	return Entry{
		StaffUUID: "staff-1",
		TaskUUID:  "task-1",
		JobID:     "J001",
		Date:      date("2025-01-06"),
		Minutes:   minutes,
		Note:      note,
	}
}

func TestReconcileCreatesRecordWithDisplayNames(t *testing.T) {
	store := &memStore{}
	rec, _ := newTestReconciler(store)

	out, err := rec.Reconcile(context.Background(), entry(60, "setup"))
	require.NoError(t, err)
	assert.Equal(t, Created, out)
	require.Len(t, store.records, 1)

	r := store.records[0]
	assert.NotEmpty(t, r.UUID)
	assert.Equal(t, "Ada Price", r.StaffName)
	assert.Equal(t, "Bookkeeping", r.TaskName)
	assert.Equal(t, "Annual accounts", r.JobName)
	assert.Equal(t, 60, r.Minutes)
	assert.Equal(t, "setup", r.Note)
	assert.True(t, r.Billable) // submission path stores billable by default
}

func TestReconcileIdenticalResubmissionIsNoOp(t *testing.T) {
	store := &memStore{}
	rec, _ := newTestReconciler(store)

	_, err := rec.Reconcile(context.Background(), entry(60, "setup"))
	require.NoError(t, err)
	out, err := rec.Reconcile(context.Background(), entry(60, "setup"))
	require.NoError(t, err)

	assert.Equal(t, Unchanged, out)
	assert.Len(t, store.records, 1)
	assert.Equal(t, 1, store.creates)
	assert.Zero(t, store.updates)
}

func TestReconcileUpdatesExistingRecordInPlace(t *testing.T) {
	store := &memStore{}
	rec, _ := newTestReconciler(store)

	_, err := rec.Reconcile(context.Background(), entry(60, "setup"))
	require.NoError(t, err)
	out, err := rec.Reconcile(context.Background(), entry(120, "setup"))
	require.NoError(t, err)

	assert.Equal(t, Updated, out)
	require.Len(t, store.records, 1)
	assert.Equal(t, 120, store.records[0].Minutes)
	assert.Equal(t, 1, store.updates)
}

func TestReconcileMissingStaffOrTask(t *testing.T) {
	store := &memStore{}
	rec, _ := newTestReconciler(store)

	e := entry(60, "")
	e.StaffUUID = "ghost"
	_, err := rec.Reconcile(context.Background(), e)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "staff", nf.Kind)
	assert.Equal(t, "ghost", nf.ID)

	e = entry(60, "")
	e.TaskUUID = "ghost"
	_, err = rec.Reconcile(context.Background(), e)
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "task", nf.Kind)
	assert.Empty(t, store.records)
}

func TestReconcileToleratesUnresolvableJob(t *testing.T) {
	store := &memStore{}
	rec, _ := newTestReconciler(store)

	e := entry(60, "")
	e.JobID = "J999"
	out, err := rec.Reconcile(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, Created, out)
	assert.Equal(t, "", store.records[0].JobName)
}

func TestReconcileCreateRaceConvergesOnUpdate(t *testing.T) {
	store := &memStore{}
	rec, _ := newTestReconciler(store)

	// A concurrent writer lands the row for the same natural key after
	// our lookup but before our insert.
	store.beforeCreate = func(s *memStore) {
		s.records = append(s.records, &model.Timesheet{
			UUID:      "raced",
			StaffUUID: "staff-1",
			TaskUUID:  "task-1",
			JobID:     "J001",
			EntryDate: date("2025-01-06"),
			Minutes:   30,
		})
	}

	out, err := rec.Reconcile(context.Background(), entry(60, "setup"))
	require.NoError(t, err)
	assert.Equal(t, Updated, out)
	require.Len(t, store.records, 1)
	assert.Equal(t, "raced", store.records[0].UUID)
	assert.Equal(t, 60, store.records[0].Minutes)
}

func TestApplyEntry(t *testing.T) {
	rec := &model.Timesheet{Minutes: 60, Note: "a"}
	assert.False(t, applyEntry(rec, Entry{Minutes: 60, Note: "a"}))
	assert.True(t, applyEntry(rec, Entry{Minutes: 90, Note: "a"}))
	assert.Equal(t, 90, rec.Minutes)
	assert.True(t, applyEntry(rec, Entry{Minutes: 90, Note: "b"}))
	assert.Equal(t, "b", rec.Note)
}
