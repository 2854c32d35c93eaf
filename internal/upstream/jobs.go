package upstream

import (
	"context"
	"net/url"
	"time"
)

// AssignedStaff is one <Staff> element inside an <Assigned> block.
type AssignedStaff struct {
	UUID             string `xml:"UUID"`
	Name             string `xml:"Name"`
	AllocatedMinutes int    `xml:"AllocatedMinutes"`
}

// TaskRecord is one <Task> element nested under a job.
type TaskRecord struct {
	UUID             string          `xml:"UUID"`
	Name             string          `xml:"Name"`
	Description      string          `xml:"Description"`
	EstimatedMinutes int             `xml:"EstimatedMinutes"`
	Completed        string          `xml:"Completed"`
	Billable         string          `xml:"Billable"`
	Assigned         []AssignedStaff `xml:"Assigned>Staff"`
}

// JobRecord is one <Job> element from the job list endpoint, including
// nested tasks and staff assignments.
type JobRecord struct {
	ID            string          `xml:"ID"`
	UUID          string          `xml:"UUID"`
	Name          string          `xml:"Name"`
	Description   string          `xml:"Description"`
	State         string          `xml:"State"`
	StartDate     string          `xml:"StartDate"`
	DueDate       string          `xml:"DueDate"`
	CompletedDate string          `xml:"CompletedDate"`
	Client        ManagerRef      `xml:"Client"`
	Manager       ManagerRef      `xml:"Manager"`
	Partner       ManagerRef      `xml:"Partner"`
	WebURL        string          `xml:"WebUrl"`
	Assigned      []AssignedStaff `xml:"Assigned>Staff"`
	Tasks         []TaskRecord    `xml:"Tasks>Task"`
}

type jobListResponse struct {
	Status string      `xml:"Status"`
	Jobs   []JobRecord `xml:"Jobs>Job"`
}

// ListJobs fetches every current job with its tasks and assignments.
func (c *Client) ListJobs(ctx context.Context) ([]JobRecord, error) {
	params := url.Values{"detailed": {"true"}}
	var resp jobListResponse
	if err := c.get(ctx, "job.api/current", params, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// Date accessors: the upstream delivers timestamps as
// 2006-01-02T15:04:05 strings; missing or malformed values yield nil.

func (j JobRecord) Start() *time.Time     { return parseAPITime(j.StartDate) }
func (j JobRecord) Due() *time.Time       { return parseAPITime(j.DueDate) }
func (j JobRecord) Completed() *time.Time { return parseAPITime(j.CompletedDate) }
