// Package timesheet implements the time-entry engine: normalizing raw
// submissions, reconciling them against the store with natural-key
// upsert semantics, and aggregating stored entries into weekly reports.
// The package owns no I/O of its own; stores and resolvers are injected
// through the interfaces in types.go.
package timesheet

import (
	"errors"
	"fmt"
)

// ErrConflict signals a concurrent write collision on the same natural
// key. The Reconciler retries the lookup-then-write sequence once; if
// the collision persists it surfaces this error so the caller can retry
// the whole submission. Handlers should translate it into an HTTP 409.
var ErrConflict = errors.New("timesheet: natural key conflict")

// ValidationError reports malformed submission input such as an
// unparseable date or negative hours. It aborts only the offending
// submission item; entries already committed in the same batch stay
// committed.
type ValidationError struct {
	Field  string // offending input field ("date", "hours")
	Value  string // the raw value as received
	Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports that a referenced staff or task identifier does
// not resolve. It aborts reconciliation of the specific entry and names
// the identifier that failed.
type NotFoundError struct {
	Kind string // "staff" or "task"
	ID   string // the identifier that failed to resolve
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
