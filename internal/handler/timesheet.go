package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/neomatrix/timekeeper/internal/middleware"
	"github.com/neomatrix/timekeeper/internal/timesheet"
)

// TimesheetHandler exposes the weekly-hours endpoints: batch submission
// and the aggregated weekly report.
type TimesheetHandler struct {
	Svc *timesheet.Service
}

func NewTimesheetHandler(svc *timesheet.Service) *TimesheetHandler {
	return &TimesheetHandler{Svc: svc}
}

type submitReq struct {
	Items []timesheet.SubmissionItem `json:"items"`
}

// Submit accepts a batch of raw task/day entries for one staff member.
// Item failures are reported in the response while the rest of the
// batch proceeds; the overall status is 200 as long as the batch ran.
func (h *TimesheetHandler) Submit(c echo.Context) error {
	staffUUID := c.Param("staff_uuid")
	if staffUUID != middleware.StaffUUID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot submit for another staff member"})
	}

	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items required"})
	}

	res, err := h.Svc.SubmitTimesheet(c.Request().Context(), staffUUID, req.Items)
	if err != nil {
		// Only context cancellation aborts a batch mid-way.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submission aborted", "partial": res})
	}
	return c.JSON(http.StatusOK, res)
}

// WeeklyHours returns the aggregated report for the week given in the
// optional :week_start parameter (YYYY-MM-DD, snapped to its Monday).
// Without the parameter the current week is reported.
func (h *TimesheetHandler) WeeklyHours(c echo.Context) error {
	staffUUID := c.Param("staff_uuid")
	if staffUUID != middleware.StaffUUID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot view another staff member's hours"})
	}

	var weekStart time.Time
	if p := c.Param("week_start"); p != "" {
		d, err := time.ParseInLocation("2006-01-02", p, time.UTC)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_start must be YYYY-MM-DD"})
		}
		weekStart = timesheet.WeekStartOf(d)
	}

	report, err := h.Svc.WeeklyHours(c.Request().Context(), staffUUID, weekStart)
	if err != nil {
		return timesheetError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// timesheetError maps domain errors onto HTTP statuses.
func timesheetError(c echo.Context, err error) error {
	var ve *timesheet.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	}
	var nfe *timesheet.NotFoundError
	if errors.As(err, &nfe) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nfe.Error()})
	}
	if errors.Is(err, timesheet.ErrConflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "concurrent update, retry"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
