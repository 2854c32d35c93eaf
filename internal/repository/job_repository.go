package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/neomatrix/timekeeper/internal/model"
)

// JobRepo provides access to the jobs and job_assigned_staff tables.
type JobRepo struct {
	db *sql.DB
}

// NewJobRepo returns a JobRepo bound to the given database.
func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{db: db} }

const jobCols = `id, job_id, uuid, name, description, state, client_uuid, manager_uuid, partner_uuid,
	start_date, due_date, completed_date, web_url`

func scanJob(row interface{ Scan(...any) error }) (*model.Job, error) {
	var (
		j                        model.Job
		startDate, dueDate, done sql.NullTime
	)
	err := row.Scan(&j.ID, &j.JobID, &j.UUID, &j.Name, &j.Description, &j.State,
		&j.ClientUUID, &j.ManagerUUID, &j.PartnerUUID, &startDate, &dueDate, &done, &j.WebURL)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		t := startDate.Time
		j.StartDate = &t
	}
	if dueDate.Valid {
		t := dueDate.Time
		j.DueDate = &t
	}
	if done.Valid {
		t := done.Time
		j.CompletedDate = &t
	}
	return &j, nil
}

// GetByJobID returns the job with the given human-facing job number, or
// ErrNotFound.
func (r *JobRepo) GetByJobID(ctx context.Context, jobID string) (*model.Job, error) {
	const q = `SELECT ` + jobCols + ` FROM jobs WHERE job_id = ? LIMIT 1`
	j, err := scanJob(r.db.QueryRowContext(ctx, q, jobID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return j, err
}

// ResolveJob implements timesheet.JobResolver: a missing job resolves to
// (nil, nil) so the Reconciler can tolerate it.
func (r *JobRepo) ResolveJob(ctx context.Context, jobID string) (*model.Job, error) {
	j, err := r.GetByJobID(ctx, jobID)
	if err == ErrNotFound {
		return nil, nil
	}
	return j, err
}

// JobWithClient pairs a job with its resolved client name for listing
// endpoints. Jobs whose client no longer resolves carry "Unknown Client".
type JobWithClient struct {
	Job        model.Job
	ClientName string
}

// listWithClients runs a jobs query (already ordered) and resolves
// client names in one extra query instead of one per job.
func (r *JobRepo) listWithClients(ctx context.Context, q string, args ...any) ([]JobWithClient, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []JobWithClient{}, nil
	}

	seen := map[string]bool{}
	var ids []any
	var placeholders []string
	for _, j := range jobs {
		if j.ClientUUID != "" && !seen[j.ClientUUID] {
			seen[j.ClientUUID] = true
			ids = append(ids, j.ClientUUID)
			placeholders = append(placeholders, "?")
		}
	}
	names := map[string]string{}
	if len(ids) > 0 {
		cq := `SELECT uuid, name FROM clients WHERE uuid IN (` + strings.Join(placeholders, ",") + `)`
		crows, err := r.db.QueryContext(ctx, cq, ids...)
		if err != nil {
			return nil, err
		}
		defer crows.Close()
		for crows.Next() {
			var uuid, name string
			if err := crows.Scan(&uuid, &name); err != nil {
				return nil, err
			}
			names[uuid] = name
		}
		if err := crows.Err(); err != nil {
			return nil, err
		}
	}

	out := make([]JobWithClient, 0, len(jobs))
	for _, j := range jobs {
		name, ok := names[j.ClientUUID]
		if !ok {
			name = "Unknown Client"
		}
		out = append(out, JobWithClient{Job: j, ClientName: name})
	}
	return out, nil
}

// ListCurrent returns every job with its client name, ordered by due
// date. This backs the jobs browse endpoint.
func (r *JobRepo) ListCurrent(ctx context.Context) ([]JobWithClient, error) {
	const q = `SELECT ` + prefixedJobCols + ` FROM jobs j ORDER BY j.due_date`
	return r.listWithClients(ctx, q)
}

// ListAssigned returns every job that has at least one staff assignment,
// ordered by due date.
func (r *JobRepo) ListAssigned(ctx context.Context) ([]JobWithClient, error) {
	const q = `SELECT DISTINCT ` + prefixedJobCols + ` FROM jobs j
	           JOIN job_assigned_staff a ON a.job_uuid = j.uuid
	           ORDER BY j.due_date`
	return r.listWithClients(ctx, q)
}

// ListByStaff returns the jobs assigned to one staff member, ordered by
// due date.
func (r *JobRepo) ListByStaff(ctx context.Context, staffUUID string) ([]JobWithClient, error) {
	const q = `SELECT ` + prefixedJobCols + ` FROM jobs j
	           JOIN job_assigned_staff a ON a.job_uuid = j.uuid
	           WHERE a.staff_uuid = ?
	           ORDER BY j.due_date`
	return r.listWithClients(ctx, q, staffUUID)
}

// ListByClient returns a client's jobs ordered by due date.
func (r *JobRepo) ListByClient(ctx context.Context, clientUUID string) ([]JobWithClient, error) {
	const q = `SELECT ` + prefixedJobCols + ` FROM jobs j
	           WHERE j.client_uuid = ?
	           ORDER BY j.due_date`
	return r.listWithClients(ctx, q, clientUUID)
}

const prefixedJobCols = `j.id, j.job_id, j.uuid, j.name, j.description, j.state, j.client_uuid,
	j.manager_uuid, j.partner_uuid, j.start_date, j.due_date, j.completed_date, j.web_url`

// Upsert stores a job keyed by upstream UUID.
func (r *JobRepo) Upsert(ctx context.Context, j *model.Job) error {
	const q = `INSERT INTO jobs
	           (job_id, uuid, name, description, state, client_uuid, manager_uuid, partner_uuid,
	            start_date, due_date, completed_date, web_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             job_id = VALUES(job_id), name = VALUES(name), description = VALUES(description),
	             state = VALUES(state), client_uuid = VALUES(client_uuid),
	             manager_uuid = VALUES(manager_uuid), partner_uuid = VALUES(partner_uuid),
	             start_date = VALUES(start_date), due_date = VALUES(due_date),
	             completed_date = VALUES(completed_date), web_url = VALUES(web_url)`
	_, err := r.db.ExecContext(ctx, q,
		j.JobID, j.UUID, j.Name, j.Description, j.State, j.ClientUUID, j.ManagerUUID, j.PartnerUUID,
		nullTime(j.StartDate), nullTime(j.DueDate), nullTime(j.CompletedDate), j.WebURL)
	return err
}

// UpsertAssignment stores a job/staff assignment; (job_uuid, staff_uuid)
// is unique so resyncs do not duplicate rows.
func (r *JobRepo) UpsertAssignment(ctx context.Context, a *model.JobAssignment) error {
	const q = `INSERT INTO job_assigned_staff (job_uuid, staff_uuid, staff_name)
	           VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE staff_name = VALUES(staff_name)`
	_, err := r.db.ExecContext(ctx, q, a.JobUUID, a.StaffUUID, a.StaffName)
	return err
}

// ListAssignments returns the staff assigned to one job.
func (r *JobRepo) ListAssignments(ctx context.Context, jobUUID string) ([]model.JobAssignment, error) {
	const q = `SELECT id, job_uuid, staff_uuid, staff_name FROM job_assigned_staff WHERE job_uuid = ?`
	rows, err := r.db.QueryContext(ctx, q, jobUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.JobAssignment
	for rows.Next() {
		var a model.JobAssignment
		if err := rows.Scan(&a.ID, &a.JobUUID, &a.StaffUUID, &a.StaffName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAll returns every job ordered by job number; the republisher walks
// this list.
func (r *JobRepo) ListAll(ctx context.Context) ([]model.Job, error) {
	const q = `SELECT ` + jobCols + ` FROM jobs ORDER BY job_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
