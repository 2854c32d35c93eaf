package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts a user identifier for rate-limit keying. JWT
// numeric claims decode as float64, so both forms are handled. Returns
// "anon" for unauthenticated requests.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	return "anon"
}
