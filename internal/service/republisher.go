// Package service contains application services that sit between the
// HTTP handlers / sync worker and the repositories.
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neomatrix/timekeeper/internal/model"
	"github.com/neomatrix/timekeeper/internal/queue"
	"github.com/neomatrix/timekeeper/internal/repository"
)

// BusPublisher is the slice of queue.Publisher the republisher needs.
// Kept as an interface so tests can capture published messages.
type BusPublisher interface {
	Publish(ctx context.Context, routingKey string, v any) error
}

// Republisher pushes entity snapshots from the local database onto the
// message bus. Every entity gets a retained-style details message under
// its own routing key plus an events.<entity>Updated notification, so
// downstream consumers can either subscribe to the full firehose or to
// a single entity's topic.
type Republisher struct {
	staff   *repository.StaffRepo
	clients *repository.ClientRepo
	jobs    *repository.JobRepo
	tasks   *repository.TaskRepo
	bus     BusPublisher
}

// NewRepublisher wires the republisher with its repositories and bus.
func NewRepublisher(staff *repository.StaffRepo, clients *repository.ClientRepo, jobs *repository.JobRepo, tasks *repository.TaskRepo, bus BusPublisher) *Republisher {
	return &Republisher{staff: staff, clients: clients, jobs: jobs, tasks: tasks, bus: bus}
}

// staffDetails is the snapshot published under staff.<uuid>.details.
type staffDetails struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile,omitempty"`
	Phone       string `json:"phone,omitempty"`
	PayrollCode string `json:"payroll_code,omitempty"`
	WebURL      string `json:"web_url,omitempty"`
}

type clientDetails struct {
	UUID               string `json:"uuid"`
	Name               string `json:"name"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Website            string `json:"website,omitempty"`
	Address            string `json:"address,omitempty"`
	City               string `json:"city,omitempty"`
	Region             string `json:"region,omitempty"`
	PostCode           string `json:"post_code,omitempty"`
	Country            string `json:"country,omitempty"`
	IsProspect         bool   `json:"is_prospect"`
	IsArchived         bool   `json:"is_archived"`
	AccountManagerName string `json:"account_manager_name,omitempty"`
	JobManagerName     string `json:"job_manager_name,omitempty"`
	TypeName           string `json:"type_name,omitempty"`
}

type contactDetails struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Position  string `json:"position,omitempty"`
}

type jobDetails struct {
	JobID         string     `json:"job_id"`
	UUID          string     `json:"uuid"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	State         string     `json:"state"`
	ClientUUID    string     `json:"client_uuid"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

type taskDetails struct {
	UUID             string `json:"uuid"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Completed        bool   `json:"completed"`
	Billable         bool   `json:"billable"`
}

type assignedStaff struct {
	StaffUUID string `json:"staff_uuid"`
	StaffName string `json:"staff_name"`
}

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339) }

// PublishStaff publishes one staff member's details and status topics.
func (r *Republisher) PublishStaff(ctx context.Context, s *model.Staff) error {
	base := "staff." + s.UUID
	details := staffDetails{
		UUID:        s.UUID,
		Name:        s.Name,
		Email:       s.Email,
		Mobile:      s.Mobile,
		Phone:       s.Phone,
		PayrollCode: s.PayrollCode,
		WebURL:      s.WebURL,
	}
	if err := r.bus.Publish(ctx, base+".details", details); err != nil {
		return err
	}
	status := queue.StatusPayload{Status: "active", Timestamp: nowStamp()}
	if err := r.bus.Publish(ctx, base+".status", status); err != nil {
		return err
	}
	return r.publishEvent(ctx, "events.staffUpdated", "staff_updated", s.UUID, s.Name)
}

// PublishClient publishes a client snapshot plus one message per known
// contact under the client's contacts subtree.
func (r *Republisher) PublishClient(ctx context.Context, c *model.Client, contacts []model.Contact) error {
	base := "clients." + c.UUID
	details := clientDetails{
		UUID:               c.UUID,
		Name:               c.Name,
		Email:              c.Email,
		Phone:              c.Phone,
		Website:            c.Website,
		Address:            c.Address,
		City:               c.City,
		Region:             c.Region,
		PostCode:           c.PostCode,
		Country:            c.Country,
		IsProspect:         c.IsProspect,
		IsArchived:         c.IsArchived,
		AccountManagerName: c.AccountManagerName,
		JobManagerName:     c.JobManagerName,
		TypeName:           c.TypeName,
	}
	if err := r.bus.Publish(ctx, base+".details", details); err != nil {
		return err
	}
	for i := range contacts {
		ct := &contacts[i]
		payload := contactDetails{
			UUID:      ct.UUID,
			Name:      ct.Name,
			IsPrimary: ct.IsPrimary,
			Email:     ct.Email,
			Mobile:    ct.Mobile,
			Phone:     ct.Phone,
			Position:  ct.Position,
		}
		key := base + ".contacts." + ct.UUID + ".details"
		if err := r.bus.Publish(ctx, key, payload); err != nil {
			return err
		}
	}
	return r.publishEvent(ctx, "events.clientUpdated", "client_updated", c.UUID, c.Name)
}

// PublishJob publishes a job snapshot, its assigned staff list and one
// message per task under the job's tasks subtree.
func (r *Republisher) PublishJob(ctx context.Context, j *model.Job, assignments []model.JobAssignment, tasks []model.Task) error {
	base := "jobs." + j.UUID
	details := jobDetails{
		JobID:         j.JobID,
		UUID:          j.UUID,
		Name:          j.Name,
		Description:   j.Description,
		State:         j.State,
		ClientUUID:    j.ClientUUID,
		StartDate:     j.StartDate,
		DueDate:       j.DueDate,
		CompletedDate: j.CompletedDate,
	}
	if err := r.bus.Publish(ctx, base+".details", details); err != nil {
		return err
	}
	staffList := make([]assignedStaff, 0, len(assignments))
	for _, a := range assignments {
		staffList = append(staffList, assignedStaff{StaffUUID: a.StaffUUID, StaffName: a.StaffName})
	}
	if err := r.bus.Publish(ctx, base+".assigned-staff", staffList); err != nil {
		return err
	}
	for i := range tasks {
		t := &tasks[i]
		payload := taskDetails{
			UUID:             t.UUID,
			Name:             t.Name,
			Description:      t.Description,
			EstimatedMinutes: t.EstimatedMinutes,
			Completed:        t.Completed,
			Billable:         t.Billable,
		}
		key := base + ".tasks." + t.UUID + ".details"
		if err := r.bus.Publish(ctx, key, payload); err != nil {
			return err
		}
	}
	return r.publishEvent(ctx, "events.jobUpdated", "job_updated", j.UUID, j.Name)
}

func (r *Republisher) publishEvent(ctx context.Context, key, eventType, uuid, name string) error {
	ev := queue.EntityUpdatedEvent{
		EventType: eventType,
		UUID:      uuid,
		Name:      name,
		Timestamp: nowStamp(),
	}
	return r.bus.Publish(ctx, key, ev)
}

// RepublishAll reads every staff member, client and job out of the
// database and publishes fresh snapshots for all of them. Individual
// entity failures are logged and counted but do not abort the run.
func (r *Republisher) RepublishAll(ctx context.Context) error {
	var failed int

	staff, err := r.staff.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("republish: list staff: %w", err)
	}
	for i := range staff {
		if err := r.PublishStaff(ctx, &staff[i]); err != nil {
			log.Printf("republish: staff %s: %v", staff[i].UUID, err)
			failed++
		}
	}

	clients, err := r.clients.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("republish: list clients: %w", err)
	}
	for i := range clients {
		contacts, err := r.clients.ListContactsByClient(ctx, clients[i].UUID)
		if err != nil {
			log.Printf("republish: contacts for client %s: %v", clients[i].UUID, err)
			failed++
			continue
		}
		if err := r.PublishClient(ctx, &clients[i], contacts); err != nil {
			log.Printf("republish: client %s: %v", clients[i].UUID, err)
			failed++
		}
	}

	jobs, err := r.jobs.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("republish: list jobs: %w", err)
	}
	for i := range jobs {
		assignments, err := r.jobs.ListAssignments(ctx, jobs[i].UUID)
		if err != nil {
			log.Printf("republish: assignments for job %s: %v", jobs[i].JobID, err)
			failed++
			continue
		}
		tasks, err := r.tasks.ListByJob(ctx, jobs[i].UUID)
		if err != nil {
			log.Printf("republish: tasks for job %s: %v", jobs[i].JobID, err)
			failed++
			continue
		}
		if err := r.PublishJob(ctx, &jobs[i], assignments, tasks); err != nil {
			log.Printf("republish: job %s: %v", jobs[i].JobID, err)
			failed++
		}
	}

	log.Printf("republish: done – %d staff, %d clients, %d jobs, %d failed",
		len(staff), len(clients), len(jobs), failed)
	if failed > 0 {
		return fmt.Errorf("republish: %d entities failed", failed)
	}
	return nil
}
