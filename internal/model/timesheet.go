package model

import "time"

// Timesheet is the canonical stored time entry. Rows arrive from two
// writers: the upstream sync (keyed by the upstream entry UUID) and the
// submission path, where the Reconciler generates the UUID and enforces
// at most one row per natural key (StaffUUID, TaskUUID, JobID, EntryDate).
//
// Display names are denormalized copies captured at creation time; they
// are not kept in sync with later renames in the source of truth.
//
// Fields:
//  UUID            – entry UUID; upstream-supplied or locally generated.
//  JobID           – human-facing job number.
//  JobName         – denormalized job name.
//  TaskUUID        – task UUID.
//  TaskName        – denormalized task name.
//  StaffUUID       – staff UUID.
//  StaffName       – denormalized staff name.
//  EntryDate       – calendar date of the entry (midnight UTC, no time part).
//  Minutes         – duration in minutes (non-negative).
//  Note            – free text; multiple source notes joined by newline.
//  Billable        – billable flag as stored; the aggregation path resolves
//                    true billability through the task instead.
//  InvoiceTaskUUID – optional upstream invoice task reference.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Timesheet struct {
	UUID            string    // timesheets.uuid
	JobID           string    // timesheets.job_id
	JobName         string    // timesheets.job_name
	TaskUUID        string    // timesheets.task_uuid
	TaskName        string    // timesheets.task_name
	StaffUUID       string    // timesheets.staff_uuid
	StaffName       string    // timesheets.staff_name
	EntryDate       time.Time // timesheets.entry_date
	Minutes         int       // timesheets.minutes
	Note            string    // timesheets.note
	Billable        bool      // timesheets.billable
	InvoiceTaskUUID *string   // timesheets.invoice_task_uuid (nullable)
	CreatedAt       time.Time // timesheets.created_at
	UpdatedAt       time.Time // timesheets.updated_at
}
