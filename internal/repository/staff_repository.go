package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/neomatrix/timekeeper/internal/model"
)

// StaffRepo provides access to the staff table. Rows are owned by the
// upstream sync; the API layer only reads them (email lookups for
// registration, name resolution for the timesheet engine).
type StaffRepo struct {
	db *sql.DB
}

// NewStaffRepo returns a StaffRepo bound to the given database.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

const staffCols = `id, uuid, name, email, mobile, phone, payroll_code, web_url`

func scanStaff(row interface{ Scan(...any) error }) (*model.Staff, error) {
	var s model.Staff
	err := row.Scan(&s.ID, &s.UUID, &s.Name, &s.Email, &s.Mobile, &s.Phone, &s.PayrollCode, &s.WebURL)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByUUID returns one staff member, or ErrNotFound.
func (r *StaffRepo) GetByUUID(ctx context.Context, uuid string) (*model.Staff, error) {
	const q = `SELECT ` + staffCols + ` FROM staff WHERE uuid = ? LIMIT 1`
	s, err := scanStaff(r.db.QueryRowContext(ctx, q, uuid))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return s, err
}

// GetByEmail returns the staff member with the given email (normalized
// to lower case), or ErrNotFound. Registration uses this to decide
// whether an email belongs to a known staff member.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + staffCols + ` FROM staff WHERE LOWER(email) = ? LIMIT 1`
	s, err := scanStaff(r.db.QueryRowContext(ctx, q, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return s, err
}

// ResolveStaff implements timesheet.StaffResolver: a missing staff
// member resolves to (nil, nil) rather than an error.
func (r *StaffRepo) ResolveStaff(ctx context.Context, uuid string) (*model.Staff, error) {
	s, err := r.GetByUUID(ctx, uuid)
	if err == ErrNotFound {
		return nil, nil
	}
	return s, err
}

// ListAll returns every staff member ordered by name. The republisher
// walks this list when pushing snapshots onto the bus.
func (r *StaffRepo) ListAll(ctx context.Context) ([]model.Staff, error) {
	const q = `SELECT ` + staffCols + ` FROM staff ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Upsert stores a staff member keyed by upstream UUID, overwriting all
// synced fields on conflict.
func (r *StaffRepo) Upsert(ctx context.Context, s *model.Staff) error {
	const q = `INSERT INTO staff (uuid, name, email, mobile, phone, payroll_code, web_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             name = VALUES(name), email = VALUES(email), mobile = VALUES(mobile),
	             phone = VALUES(phone), payroll_code = VALUES(payroll_code), web_url = VALUES(web_url)`
	_, err := r.db.ExecContext(ctx, q, s.UUID, s.Name, s.Email, s.Mobile, s.Phone, s.PayrollCode, s.WebURL)
	return err
}
