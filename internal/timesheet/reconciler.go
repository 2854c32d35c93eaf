package timesheet

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/neomatrix/timekeeper/internal/model"
)

// Outcome reports what a reconciliation did to the store.
type Outcome int

const (
	// Unchanged means a matching record already held identical values;
	// no write was issued.
	Unchanged Outcome = iota
	// Created means a new record was inserted for the natural key.
	Created
	// Updated means the existing record's minutes/note were rewritten.
	Updated
)

// Reconciler persists canonical entries with at-most-one-record-per-
// natural-key semantics. It is the sole writer of the submission path;
// the Aggregator only reads.
type Reconciler struct {
	store Store
	staff StaffResolver
	tasks TaskResolver
	jobs  JobResolver
}

// NewReconciler returns a Reconciler bound to the given store and
// resolvers.
func NewReconciler(store Store, staff StaffResolver, tasks TaskResolver, jobs JobResolver) *Reconciler {
	return &Reconciler{store: store, staff: staff, tasks: tasks, jobs: jobs}
}

// Reconcile finds or creates the stored record matching e's natural key
// (staff, task, job, date). Resubmission of identical data is a pure
// no-op. When two writers race to create the same key, the store's
// unique constraint rejects the loser, which falls back to the update
// path once; a second collision surfaces ErrConflict.
func (r *Reconciler) Reconcile(ctx context.Context, e Entry) (Outcome, error) {
	existing, err := r.store.FindByNaturalKey(ctx, e.StaffUUID, e.TaskUUID, e.JobID, e.Date)
	if err != nil {
		return Unchanged, err
	}
	if existing != nil {
		return r.update(ctx, existing, e)
	}

	rec, err := r.build(ctx, e)
	if err != nil {
		return Unchanged, err
	}
	if err := r.store.Create(ctx, rec); err != nil {
		if !errors.Is(err, ErrConflict) {
			return Unchanged, err
		}
		// A concurrent writer created the row between our lookup and
		// insert. Re-read and converge on the update path.
		existing, err = r.store.FindByNaturalKey(ctx, e.StaffUUID, e.TaskUUID, e.JobID, e.Date)
		if err != nil {
			return Unchanged, err
		}
		if existing == nil {
			return Unchanged, ErrConflict
		}
		return r.update(ctx, existing, e)
	}
	return Created, nil
}

// update applies e to an already-stored record, writing only when the
// content actually changed.
func (r *Reconciler) update(ctx context.Context, rec *model.Timesheet, e Entry) (Outcome, error) {
	if !applyEntry(rec, e) {
		return Unchanged, nil
	}
	if err := r.store.Update(ctx, rec); err != nil {
		return Unchanged, err
	}
	return Updated, nil
}

// applyEntry copies e's mutable fields (minutes, note) onto rec and
// reports whether anything changed. Kept free of store I/O so the
// compare-then-conditional-write decision is testable on its own.
func applyEntry(rec *model.Timesheet, e Entry) bool {
	if rec.Minutes == e.Minutes && rec.Note == e.Note {
		return false
	}
	rec.Minutes = e.Minutes
	rec.Note = e.Note
	return true
}

// build assembles a fresh record for e, resolving display names. Staff
// and task must exist; a job that fails to resolve is tolerated and its
// name stored empty.
func (r *Reconciler) build(ctx context.Context, e Entry) (*model.Timesheet, error) {
	staff, err := r.staff.ResolveStaff(ctx, e.StaffUUID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, &NotFoundError{Kind: "staff", ID: e.StaffUUID}
	}
	task, err := r.tasks.ResolveTask(ctx, e.TaskUUID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, &NotFoundError{Kind: "task", ID: e.TaskUUID}
	}
	jobName := ""
	if job, err := r.jobs.ResolveJob(ctx, e.JobID); err == nil && job != nil {
		jobName = job.Name
	}
	return &model.Timesheet{
		UUID:      uuid.NewString(),
		JobID:     e.JobID,
		JobName:   jobName,
		TaskUUID:  e.TaskUUID,
		TaskName:  task.Name,
		StaffUUID: e.StaffUUID,
		StaffName: staff.Name,
		EntryDate: e.Date,
		Minutes:   e.Minutes,
		Note:      e.Note,
		// Submitted rows are stored billable regardless of the task's
		// flag; reports resolve billability through the task instead.
		// TODO: store task.Billable here once the reporting path is the
		// only consumer of this column.
		Billable: true,
	}, nil
}
