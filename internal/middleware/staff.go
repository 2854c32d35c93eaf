package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireStaffLink aborts with 403 unless the authenticated user's
// token carries a non-empty staff_uuid claim. Timesheet and job routes
// are meaningless for accounts that are not linked to a staff record,
// so they sit behind this guard. Assumes JWTAuth ran earlier in the
// chain.
func RequireStaffLink() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uuid, ok := c.Get("staff_uuid").(string)
			if !ok || uuid == "" {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account not linked to a staff record"})
			}
			return next(c)
		}
	}
}

// StaffUUID returns the staff_uuid claim stored by JWTAuth, or "" when
// the request is unauthenticated or the claim is absent.
func StaffUUID(c echo.Context) string {
	if v, ok := c.Get("staff_uuid").(string); ok {
		return v
	}
	return ""
}
