package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/neomatrix/timekeeper/internal/model"
)

// TaskRepo provides access to the tasks and task_assigned_staff tables.
// The bulk billability lookup exists specifically for the Weekly
// Aggregator so a report costs one query per week, not one per entry.
type TaskRepo struct {
	db *sql.DB
}

// NewTaskRepo returns a TaskRepo bound to the given database.
func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskCols = `id, uuid, job_uuid, name, description, estimated_minutes, completed, billable`

func scanTask(row interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.UUID, &t.JobUUID, &t.Name, &t.Description, &t.EstimatedMinutes, &t.Completed, &t.Billable)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByUUID returns one task, or ErrNotFound.
func (r *TaskRepo) GetByUUID(ctx context.Context, uuid string) (*model.Task, error) {
	const q = `SELECT ` + taskCols + ` FROM tasks WHERE uuid = ? LIMIT 1`
	t, err := scanTask(r.db.QueryRowContext(ctx, q, uuid))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

// ResolveTask implements timesheet.TaskResolver: missing tasks resolve
// to (nil, nil).
func (r *TaskRepo) ResolveTask(ctx context.Context, uuid string) (*model.Task, error) {
	t, err := r.GetByUUID(ctx, uuid)
	if err == ErrNotFound {
		return nil, nil
	}
	return t, err
}

// ResolveTasks returns the tasks matching the given UUIDs in a single
// query. UUIDs with no matching row are absent from the result.
func (r *TaskRepo) ResolveTasks(ctx context.Context, uuids []string) (map[string]model.Task, error) {
	out := make(map[string]model.Task, len(uuids))
	if len(uuids) == 0 {
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(uuids)), ",")
	q := `SELECT ` + taskCols + ` FROM tasks WHERE uuid IN (` + placeholders + `)`
	args := make([]any, len(uuids))
	for i, id := range uuids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out[t.UUID] = *t
	}
	return out, rows.Err()
}

// ListByJob returns all tasks belonging to the job with the given UUID.
func (r *TaskRepo) ListByJob(ctx context.Context, jobUUID string) ([]model.Task, error) {
	const q = `SELECT ` + taskCols + ` FROM tasks WHERE job_uuid = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, jobUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Upsert stores a task keyed by upstream UUID.
func (r *TaskRepo) Upsert(ctx context.Context, t *model.Task) error {
	const q = `INSERT INTO tasks (uuid, job_uuid, name, description, estimated_minutes, completed, billable)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             job_uuid = VALUES(job_uuid), name = VALUES(name), description = VALUES(description),
	             estimated_minutes = VALUES(estimated_minutes), completed = VALUES(completed),
	             billable = VALUES(billable)`
	_, err := r.db.ExecContext(ctx, q, t.UUID, t.JobUUID, t.Name, t.Description, t.EstimatedMinutes, t.Completed, t.Billable)
	return err
}

// UpsertAssignment stores a task/staff assignment; (task_uuid,
// staff_uuid) is unique so resyncs do not duplicate rows.
func (r *TaskRepo) UpsertAssignment(ctx context.Context, a *model.TaskAssignment) error {
	const q = `INSERT INTO task_assigned_staff (task_uuid, staff_uuid, staff_name, allocated_minutes)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             staff_name = VALUES(staff_name), allocated_minutes = VALUES(allocated_minutes)`
	_, err := r.db.ExecContext(ctx, q, a.TaskUUID, a.StaffUUID, a.StaffName, a.AllocatedMinutes)
	return err
}

// ListAssignments returns the staff assigned to one task.
func (r *TaskRepo) ListAssignments(ctx context.Context, taskUUID string) ([]model.TaskAssignment, error) {
	const q = `SELECT id, task_uuid, staff_uuid, staff_name, allocated_minutes
	           FROM task_assigned_staff WHERE task_uuid = ?`
	rows, err := r.db.QueryContext(ctx, q, taskUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TaskAssignment
	for rows.Next() {
		var a model.TaskAssignment
		if err := rows.Scan(&a.ID, &a.TaskUUID, &a.StaffUUID, &a.StaffName, &a.AllocatedMinutes); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
