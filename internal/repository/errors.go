// Package repository implements the MySQL persistence layer. Each
// repository wraps a *sql.DB and exposes typed operations over one
// table family. Sentinel errors defined here let handlers and the
// timesheet engine distinguish failure scenarios without inspecting
// driver error strings.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row. Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by UserRepo.Create when the email is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// isDuplicate reports whether err is a MySQL duplicate-entry error
// (1062), i.e. a unique-constraint rejection. The timesheets natural
// key relies on this to serialize concurrent creators of the same key.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
