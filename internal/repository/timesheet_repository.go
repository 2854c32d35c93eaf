package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/neomatrix/timekeeper/internal/model"
	"github.com/neomatrix/timekeeper/internal/timesheet"
)

// TimesheetRepo provides access to the timesheets table. It implements
// timesheet.Store for the submission/aggregation engine and additionally
// offers the upstream-sync upsert keyed by entry UUID.
//
// The table carries two uniqueness guarantees: the primary key on uuid
// (upstream entries) and the natural-key unique index on
// (staff_uuid, task_uuid, job_id, entry_date) that the Reconciler
// depends on. Entry dates are stored as DATE columns in UTC.
type TimesheetRepo struct {
	db *sql.DB
}

// NewTimesheetRepo returns a TimesheetRepo bound to the given database.
func NewTimesheetRepo(db *sql.DB) *TimesheetRepo { return &TimesheetRepo{db: db} }

const timesheetCols = `uuid, job_id, job_name, task_uuid, task_name, staff_uuid, staff_name,
	entry_date, minutes, note, billable, invoice_task_uuid, created_at, updated_at`

func scanTimesheet(row interface{ Scan(...any) error }) (*model.Timesheet, error) {
	var (
		rec        model.Timesheet
		invoiceRef sql.NullString
	)
	err := row.Scan(
		&rec.UUID, &rec.JobID, &rec.JobName, &rec.TaskUUID, &rec.TaskName,
		&rec.StaffUUID, &rec.StaffName, &rec.EntryDate, &rec.Minutes,
		&rec.Note, &rec.Billable, &invoiceRef, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if invoiceRef.Valid {
		ref := invoiceRef.String
		rec.InvoiceTaskUUID = &ref
	}
	return &rec, nil
}

// FindByNaturalKey returns the single record matching the natural key,
// or (nil, nil) when none exists.
func (r *TimesheetRepo) FindByNaturalKey(ctx context.Context, staffUUID, taskUUID, jobID string, date time.Time) (*model.Timesheet, error) {
	const q = `SELECT ` + timesheetCols + ` FROM timesheets
	           WHERE staff_uuid = ? AND task_uuid = ? AND job_id = ? AND entry_date = ?
	           LIMIT 1`
	rec, err := scanTimesheet(r.db.QueryRowContext(ctx, q, staffUUID, taskUUID, jobID, date.Format("2006-01-02")))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Create inserts a new timesheet row. A natural-key collision surfaces
// as timesheet.ErrConflict so the Reconciler can converge on the update
// path.
func (r *TimesheetRepo) Create(ctx context.Context, rec *model.Timesheet) error {
	const q = `INSERT INTO timesheets
	           (uuid, job_id, job_name, task_uuid, task_name, staff_uuid, staff_name,
	            entry_date, minutes, note, billable, invoice_task_uuid)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.UUID, rec.JobID, rec.JobName, rec.TaskUUID, rec.TaskName,
		rec.StaffUUID, rec.StaffName, rec.EntryDate.Format("2006-01-02"),
		rec.Minutes, rec.Note, rec.Billable, rec.InvoiceTaskUUID,
	)
	if isDuplicate(err) {
		return timesheet.ErrConflict
	}
	return err
}

// Update rewrites the mutable fields (minutes, note) of an existing row.
func (r *TimesheetRepo) Update(ctx context.Context, rec *model.Timesheet) error {
	const q = `UPDATE timesheets SET minutes = ?, note = ? WHERE uuid = ?`
	_, err := r.db.ExecContext(ctx, q, rec.Minutes, rec.Note, rec.UUID)
	return err
}

// QueryRange returns all entries for one staff member with entry_date in
// [from, to], both ends inclusive, ordered by date then creation time so
// same-day notes keep their arrival order.
func (r *TimesheetRepo) QueryRange(ctx context.Context, staffUUID string, from, to time.Time) ([]model.Timesheet, error) {
	const q = `SELECT ` + timesheetCols + ` FROM timesheets
	           WHERE staff_uuid = ? AND entry_date BETWEEN ? AND ?
	           ORDER BY entry_date, created_at`
	rows, err := r.db.QueryContext(ctx, q, staffUUID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Timesheet
	for rows.Next() {
		rec, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// UpsertSynced stores an entry fetched from the upstream API, keyed by
// its upstream UUID. Matching rows are overwritten field by field, which
// mirrors the upstream being the source of truth for synced entries.
func (r *TimesheetRepo) UpsertSynced(ctx context.Context, rec *model.Timesheet) error {
	const q = `INSERT INTO timesheets
	           (uuid, job_id, job_name, task_uuid, task_name, staff_uuid, staff_name,
	            entry_date, minutes, note, billable, invoice_task_uuid)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             job_id = VALUES(job_id), job_name = VALUES(job_name),
	             task_uuid = VALUES(task_uuid), task_name = VALUES(task_name),
	             staff_uuid = VALUES(staff_uuid), staff_name = VALUES(staff_name),
	             entry_date = VALUES(entry_date), minutes = VALUES(minutes),
	             note = VALUES(note), billable = VALUES(billable),
	             invoice_task_uuid = VALUES(invoice_task_uuid)`
	_, err := r.db.ExecContext(ctx, q,
		rec.UUID, rec.JobID, rec.JobName, rec.TaskUUID, rec.TaskName,
		rec.StaffUUID, rec.StaffName, rec.EntryDate.Format("2006-01-02"),
		rec.Minutes, rec.Note, rec.Billable, rec.InvoiceTaskUUID,
	)
	return err
}

// SumMinutesByTask returns total logged minutes grouped by task UUID for
// the given tasks. Tasks with no entries are absent from the map.
func (r *TimesheetRepo) SumMinutesByTask(ctx context.Context, taskUUIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(taskUUIDs))
	if len(taskUUIDs) == 0 {
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(taskUUIDs)), ",")
	q := `SELECT task_uuid, COALESCE(SUM(minutes), 0) FROM timesheets
	      WHERE task_uuid IN (` + placeholders + `) GROUP BY task_uuid`
	args := make([]any, len(taskUUIDs))
	for i, id := range taskUUIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  string
			sum int
		)
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, err
		}
		out[id] = sum
	}
	return out, rows.Err()
}
