package model

import "time"

// Job represents an upstream job (engagement). Jobs carry both a
// human-facing job number (JobID, e.g. "J001516") and an upstream UUID;
// time entries reference jobs by the job number.
//
// Fields:
//  ID            – primary key identifier.
//  JobID         – human-facing job number (unique).
//  UUID          – upstream job UUID (unique).
//  Name          – job name.
//  Description   – free-text description.
//  State         – upstream workflow state (e.g. "In Progress").
//  ClientUUID    – owning client's UUID.
//  ManagerUUID   – managing staff UUID.
//  PartnerUUID   – partner staff UUID.
//  StartDate     – scheduled start (nullable).
//  DueDate       – scheduled due date (nullable).
//  CompletedDate – completion timestamp (nullable).
//  WebURL        – link back to the upstream job page.
type Job struct {
	ID            uint64     // jobs.id
	JobID         string     // jobs.job_id
	UUID          string     // jobs.uuid
	Name          string     // jobs.name
	Description   string     // jobs.description
	State         string     // jobs.state
	ClientUUID    string     // jobs.client_uuid
	ManagerUUID   string     // jobs.manager_uuid
	PartnerUUID   string     // jobs.partner_uuid
	StartDate     *time.Time // jobs.start_date (nullable)
	DueDate       *time.Time // jobs.due_date (nullable)
	CompletedDate *time.Time // jobs.completed_date (nullable)
	WebURL        string     // jobs.web_url
}

// Task is a unit of work under a Job. Billable classification lives
// here: the Aggregator resolves a time entry's billability through its
// task, never through the entry itself.
//
// Fields:
//  ID               – primary key identifier.
//  UUID             – upstream task UUID (unique).
//  JobUUID          – owning job's UUID.
//  Name             – task name.
//  Description      – free-text description.
//  EstimatedMinutes – upstream estimate.
//  Completed        – completion flag.
//  Billable         – whether logged time counts toward invoiceable totals.
type Task struct {
	ID               uint64 // tasks.id
	UUID             string // tasks.uuid
	JobUUID          string // tasks.job_uuid
	Name             string // tasks.name
	Description      string // tasks.description
	EstimatedMinutes int    // tasks.estimated_minutes
	Completed        bool   // tasks.completed
	Billable         bool   // tasks.billable
}

// JobAssignment links a staff member to a job. The pair
// (JobUUID, StaffUUID) is unique.
type JobAssignment struct {
	ID        uint64 // job_assigned_staff.id
	JobUUID   string // job_assigned_staff.job_uuid
	StaffUUID string // job_assigned_staff.staff_uuid
	StaffName string // job_assigned_staff.staff_name
}

// TaskAssignment links a staff member to a task with an allocated
// minute budget. The pair (TaskUUID, StaffUUID) is unique.
type TaskAssignment struct {
	ID               uint64 // task_assigned_staff.id
	TaskUUID         string // task_assigned_staff.task_uuid
	StaffUUID        string // task_assigned_staff.staff_uuid
	StaffName        string // task_assigned_staff.staff_name
	AllocatedMinutes int    // task_assigned_staff.allocated_minutes
}
