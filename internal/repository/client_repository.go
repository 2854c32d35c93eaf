package repository

import (
	"context"
	"database/sql"

	"github.com/neomatrix/timekeeper/internal/model"
)

// ClientRepo provides access to the clients and contacts tables. Rows
// arrive from the upstream sync; the only local mutation is the archive
// toggle exposed by the API.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientCols = `id, uuid, name, email, phone, fax, website, address, city, region, post_code,
	country, is_prospect, is_archived, is_deleted, account_manager_uuid, account_manager_name,
	job_manager_uuid, job_manager_name, type_name, web_url`

func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.UUID, &c.Name, &c.Email, &c.Phone, &c.Fax, &c.Website,
		&c.Address, &c.City, &c.Region, &c.PostCode, &c.Country,
		&c.IsProspect, &c.IsArchived, &c.IsDeleted,
		&c.AccountManagerUUID, &c.AccountManagerName,
		&c.JobManagerUUID, &c.JobManagerName, &c.TypeName, &c.WebURL)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByUUID returns one client, or ErrNotFound.
func (r *ClientRepo) GetByUUID(ctx context.Context, uuid string) (*model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients WHERE uuid = ? LIMIT 1`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, uuid))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// ListAll returns every client ordered by name.
func (r *ClientRepo) ListAll(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// ToggleArchived flips the is_archived flag and returns ErrNotFound when
// no such client exists.
func (r *ClientRepo) ToggleArchived(ctx context.Context, uuid string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET is_archived = NOT is_archived WHERE uuid = ?`, uuid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert stores a client keyed by upstream UUID. The locally-toggled
// is_archived flag is deliberately overwritten: the upstream value wins
// on resync.
func (r *ClientRepo) Upsert(ctx context.Context, c *model.Client) error {
	const q = `INSERT INTO clients
	           (uuid, name, email, phone, fax, website, address, city, region, post_code, country,
	            is_prospect, is_archived, is_deleted, account_manager_uuid, account_manager_name,
	            job_manager_uuid, job_manager_name, type_name, web_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             name = VALUES(name), email = VALUES(email), phone = VALUES(phone), fax = VALUES(fax),
	             website = VALUES(website), address = VALUES(address), city = VALUES(city),
	             region = VALUES(region), post_code = VALUES(post_code), country = VALUES(country),
	             is_prospect = VALUES(is_prospect), is_archived = VALUES(is_archived),
	             is_deleted = VALUES(is_deleted),
	             account_manager_uuid = VALUES(account_manager_uuid),
	             account_manager_name = VALUES(account_manager_name),
	             job_manager_uuid = VALUES(job_manager_uuid),
	             job_manager_name = VALUES(job_manager_name),
	             type_name = VALUES(type_name), web_url = VALUES(web_url)`
	_, err := r.db.ExecContext(ctx, q,
		c.UUID, c.Name, c.Email, c.Phone, c.Fax, c.Website, c.Address, c.City, c.Region,
		c.PostCode, c.Country, c.IsProspect, c.IsArchived, c.IsDeleted,
		c.AccountManagerUUID, c.AccountManagerName, c.JobManagerUUID, c.JobManagerName,
		c.TypeName, c.WebURL)
	return err
}

const contactCols = `id, uuid, client_uuid, is_primary, name, salutation, addressee, mobile, email, phone, position`

func scanContact(row interface{ Scan(...any) error }) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.UUID, &c.ClientUUID, &c.IsPrimary, &c.Name, &c.Salutation,
		&c.Addressee, &c.Mobile, &c.Email, &c.Phone, &c.Position)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListContacts returns every contact ordered by name.
func (r *ClientRepo) ListContacts(ctx context.Context) ([]model.Contact, error) {
	const q = `SELECT ` + contactCols + ` FROM contacts ORDER BY name`
	return r.queryContacts(ctx, q)
}

// ListContactsByClient returns one client's contacts, primary first.
func (r *ClientRepo) ListContactsByClient(ctx context.Context, clientUUID string) ([]model.Contact, error) {
	const q = `SELECT ` + contactCols + ` FROM contacts WHERE client_uuid = ? ORDER BY is_primary DESC, name`
	return r.queryContacts(ctx, q, clientUUID)
}

func (r *ClientRepo) queryContacts(ctx context.Context, q string, args ...any) ([]model.Contact, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// UpsertContact stores a contact keyed by upstream UUID.
func (r *ClientRepo) UpsertContact(ctx context.Context, c *model.Contact) error {
	const q = `INSERT INTO contacts
	           (uuid, client_uuid, is_primary, name, salutation, addressee, mobile, email, phone, position)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             client_uuid = VALUES(client_uuid), is_primary = VALUES(is_primary),
	             name = VALUES(name), salutation = VALUES(salutation), addressee = VALUES(addressee),
	             mobile = VALUES(mobile), email = VALUES(email), phone = VALUES(phone),
	             position = VALUES(position)`
	_, err := r.db.ExecContext(ctx, q,
		c.UUID, c.ClientUUID, c.IsPrimary, c.Name, c.Salutation, c.Addressee,
		c.Mobile, c.Email, c.Phone, c.Position)
	return err
}
