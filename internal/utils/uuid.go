package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeUUID canonicalizes a UUID for use in URLs and routing keys:
// lower-case, hyphenated form. The upstream API is inconsistent about
// casing and occasionally drops hyphens, so identifiers are normalized
// once at the boundary. Invalid input is returned trimmed and
// lower-cased rather than rejected, since some upstream references are
// not UUIDs at all (job numbers, payroll codes).
func NormalizeUUID(s string) string {
	s = strings.TrimSpace(s)
	if u, err := uuid.Parse(s); err == nil {
		return u.String()
	}
	return strings.ToLower(s)
}

// IsUUID reports whether s parses as a UUID in any accepted form.
func IsUUID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}
