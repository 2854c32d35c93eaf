package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/neomatrix/timekeeper/internal/repository"
)

// JobHandler serves the job browse endpoints.
type JobHandler struct {
	Jobs       *repository.JobRepo
	Tasks      *repository.TaskRepo
	Clients    *repository.ClientRepo
	Timesheets *repository.TimesheetRepo
}

func NewJobHandler(jobs *repository.JobRepo, tasks *repository.TaskRepo, clients *repository.ClientRepo, timesheets *repository.TimesheetRepo) *JobHandler {
	return &JobHandler{Jobs: jobs, Tasks: tasks, Clients: clients, Timesheets: timesheets}
}

// ----- DTOs -----

type jobSummary struct {
	JobID      string     `json:"job_id"`
	UUID       string     `json:"uuid"`
	Name       string     `json:"name"`
	State      string     `json:"state"`
	ClientName string     `json:"client_name"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

type taskProgress struct {
	UUID             string `json:"uuid"`
	Name             string `json:"name"`
	Billable         bool   `json:"billable"`
	Completed        bool   `json:"completed"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	ActualMinutes    int    `json:"actual_minutes"`
	RemainingMinutes int    `json:"remaining_minutes"` // never below zero
}

type jobDetail struct {
	jobSummary
	Description   string          `json:"description,omitempty"`
	CompletedDate *time.Time      `json:"completed_date,omitempty"`
	AssignedStaff []assignedBrief `json:"assigned_staff"`
	Tasks         []taskProgress  `json:"tasks"`
}

type assignedBrief struct {
	StaffUUID string `json:"staff_uuid"`
	StaffName string `json:"staff_name"`
}

func summarize(jc repository.JobWithClient) jobSummary {
	return jobSummary{
		JobID:      jc.Job.JobID,
		UUID:       jc.Job.UUID,
		Name:       jc.Job.Name,
		State:      jc.Job.State,
		ClientName: jc.ClientName,
		StartDate:  jc.Job.StartDate,
		DueDate:    jc.Job.DueDate,
	}
}

// List returns every synced job with its client name.
func (h *JobHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.ListCurrent(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]jobSummary, 0, len(jobs))
	for _, jc := range jobs {
		out = append(out, summarize(jc))
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": out})
}

// ListMine returns the jobs assigned to one staff member.
func (h *JobHandler) ListMine(c echo.Context) error {
	staffUUID := c.Param("staff_uuid")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.ListByStaff(ctx, staffUUID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]jobSummary, 0, len(jobs))
	for _, jc := range jobs {
		out = append(out, summarize(jc))
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": out})
}

// Detail returns one job by its job number with assigned staff and a
// per-task progress breakdown: actual minutes come from summed
// timesheet rows, remaining is the estimate minus actuals floored at
// zero.
func (h *JobHandler) Detail(c echo.Context) error {
	jobID := c.Param("job_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	tasks, err := h.Tasks.ListByJob(ctx, job.UUID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	assignments, err := h.Jobs.ListAssignments(ctx, job.UUID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	uuids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		uuids = append(uuids, t.UUID)
	}
	actuals, err := h.Timesheets.SumMinutesByTask(ctx, uuids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	clientName := "Unknown Client"
	if job.ClientUUID != "" {
		if cl, err := h.Clients.GetByUUID(ctx, job.ClientUUID); err == nil {
			clientName = cl.Name
		}
	}

	detail := jobDetail{
		jobSummary:    summarize(repository.JobWithClient{Job: *job, ClientName: clientName}),
		Description:   job.Description,
		CompletedDate: job.CompletedDate,
		AssignedStaff: make([]assignedBrief, 0, len(assignments)),
		Tasks:         make([]taskProgress, 0, len(tasks)),
	}
	for _, a := range assignments {
		detail.AssignedStaff = append(detail.AssignedStaff, assignedBrief{StaffUUID: a.StaffUUID, StaffName: a.StaffName})
	}
	for _, t := range tasks {
		actual := actuals[t.UUID]
		remaining := t.EstimatedMinutes - actual
		if remaining < 0 {
			remaining = 0
		}
		detail.Tasks = append(detail.Tasks, taskProgress{
			UUID:             t.UUID,
			Name:             t.Name,
			Billable:         t.Billable,
			Completed:        t.Completed,
			EstimatedMinutes: t.EstimatedMinutes,
			ActualMinutes:    actual,
			RemainingMinutes: remaining,
		})
	}
	return c.JSON(http.StatusOK, detail)
}
