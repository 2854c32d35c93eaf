package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neomatrix/timekeeper/internal/model"
	"github.com/neomatrix/timekeeper/internal/repository"
	"github.com/neomatrix/timekeeper/internal/service"
	"github.com/neomatrix/timekeeper/internal/upstream"
)

// TimeWindowDays is how far back each run fetches time entries. The
// upstream lets entries be corrected for a while after submission, so
// every run re-reads a trailing window and upserts whatever it finds.
const TimeWindowDays = 35

// Syncer orchestrates one full synchronization pass: staff first (jobs
// and users reference them), then clients with contacts, then jobs with
// tasks and assignments, then per-staff time entries.
type Syncer struct {
	api        *upstream.Client
	staff      *repository.StaffRepo
	clients    *repository.ClientRepo
	jobs       *repository.JobRepo
	tasks      *repository.TaskRepo
	timesheets *repository.TimesheetRepo
	pub        *service.Republisher // nil disables republishing
}

func New(api *upstream.Client, staff *repository.StaffRepo, clients *repository.ClientRepo, jobs *repository.JobRepo, tasks *repository.TaskRepo, timesheets *repository.TimesheetRepo, pub *service.Republisher) *Syncer {
	return &Syncer{
		api:        api,
		staff:      staff,
		clients:    clients,
		jobs:       jobs,
		tasks:      tasks,
		timesheets: timesheets,
		pub:        pub,
	}
}

// Run executes sync passes on the given interval until ctx is
// cancelled. The first pass starts immediately.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := s.SyncAll(ctx); err != nil {
			log.Printf("sync: pass failed: %v", err)
		}
		select {
		case <-ctx.Done():
			log.Printf("sync: stopping: %v", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}

// SyncAll runs one complete pass in dependency order.
func (s *Syncer) SyncAll(ctx context.Context) error {
	started := time.Now()
	if err := s.SyncStaff(ctx); err != nil {
		return err
	}
	if err := s.SyncClients(ctx); err != nil {
		return err
	}
	if err := s.SyncJobs(ctx); err != nil {
		return err
	}
	if err := s.SyncTimes(ctx); err != nil {
		return err
	}
	log.Printf("sync: full pass completed in %s", time.Since(started).Round(time.Millisecond))
	return nil
}

// SyncStaff fetches the staff list and upserts every member.
func (s *Syncer) SyncStaff(ctx context.Context) error {
	records, err := s.api.ListStaff(ctx)
	if err != nil {
		return fmt.Errorf("sync: fetch staff: %w", err)
	}
	var failed int
	for _, rec := range records {
		if rec.UUID == "" {
			continue
		}
		m := mapStaff(rec)
		if err := s.staff.Upsert(ctx, m); err != nil {
			log.Printf("sync: upsert staff %s: %v", rec.UUID, err)
			failed++
			continue
		}
		s.republishStaff(ctx, m)
	}
	log.Printf("sync: staff – %d fetched, %d failed", len(records), failed)
	return nil
}

// SyncClients fetches the client list and upserts clients with their
// nested contacts.
func (s *Syncer) SyncClients(ctx context.Context) error {
	records, err := s.api.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("sync: fetch clients: %w", err)
	}
	var failed int
	for _, rec := range records {
		if rec.UUID == "" {
			continue
		}
		m := mapClient(rec)
		if err := s.clients.Upsert(ctx, m); err != nil {
			log.Printf("sync: upsert client %s: %v", rec.UUID, err)
			failed++
			continue
		}
		contacts := make([]model.Contact, 0, len(rec.Contacts))
		for _, c := range rec.Contacts {
			if c.UUID == "" {
				continue
			}
			ct := mapContact(rec.UUID, c)
			if err := s.clients.UpsertContact(ctx, ct); err != nil {
				log.Printf("sync: upsert contact %s: %v", c.UUID, err)
				continue
			}
			contacts = append(contacts, *ct)
		}
		s.republishClient(ctx, m, contacts)
	}
	log.Printf("sync: clients – %d fetched, %d failed", len(records), failed)
	return nil
}

// SyncJobs fetches current jobs and upserts each with its tasks, task
// assignments and job-level staff assignments.
func (s *Syncer) SyncJobs(ctx context.Context) error {
	records, err := s.api.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("sync: fetch jobs: %w", err)
	}
	var failed int
	for _, rec := range records {
		if rec.UUID == "" || rec.ID == "" {
			continue
		}
		m := mapJob(rec)
		if err := s.jobs.Upsert(ctx, m); err != nil {
			log.Printf("sync: upsert job %s: %v", rec.ID, err)
			failed++
			continue
		}

		var assignments []model.JobAssignment
		for _, a := range rec.Assigned {
			ja := &model.JobAssignment{JobUUID: rec.UUID, StaffUUID: a.UUID, StaffName: a.Name}
			if err := s.jobs.UpsertAssignment(ctx, ja); err != nil {
				log.Printf("sync: upsert job assignment %s/%s: %v", rec.ID, a.UUID, err)
				continue
			}
			assignments = append(assignments, *ja)
		}

		tasks := make([]model.Task, 0, len(rec.Tasks))
		for _, t := range rec.Tasks {
			if t.UUID == "" {
				continue
			}
			tm := mapTask(rec.UUID, t)
			if err := s.tasks.Upsert(ctx, tm); err != nil {
				log.Printf("sync: upsert task %s: %v", t.UUID, err)
				continue
			}
			for _, a := range t.Assigned {
				ta := &model.TaskAssignment{
					TaskUUID:         t.UUID,
					StaffUUID:        a.UUID,
					StaffName:        a.Name,
					AllocatedMinutes: a.AllocatedMinutes,
				}
				if err := s.tasks.UpsertAssignment(ctx, ta); err != nil {
					log.Printf("sync: upsert task assignment %s/%s: %v", t.UUID, a.UUID, err)
				}
			}
			tasks = append(tasks, *tm)
		}

		s.republishJob(ctx, m, assignments, tasks)
	}
	log.Printf("sync: jobs – %d fetched, %d failed", len(records), failed)
	return nil
}

// SyncTimes fetches the trailing time-entry window for every known
// staff member and upserts entries by their upstream UUID.
func (s *Syncer) SyncTimes(ctx context.Context) error {
	staff, err := s.staff.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("sync: list staff for times: %w", err)
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -TimeWindowDays)

	var total, failed int
	for _, member := range staff {
		records, err := s.api.ListTimes(ctx, member.UUID, from, to)
		if err != nil {
			log.Printf("sync: fetch times for %s: %v", member.UUID, err)
			failed++
			continue
		}
		for _, rec := range records {
			if rec.UUID == "" || rec.EntryDate() == nil {
				continue
			}
			ts := mapTime(rec)
			if ts.StaffUUID == "" {
				ts.StaffUUID = member.UUID
				ts.StaffName = member.Name
			}
			if err := s.timesheets.UpsertSynced(ctx, ts); err != nil {
				log.Printf("sync: upsert time %s: %v", rec.UUID, err)
				continue
			}
			total++
		}
	}
	log.Printf("sync: times – %d entries upserted, %d staff failed", total, failed)
	return nil
}

// Republish helpers: snapshot failures are logged but never fail a
// sync pass, the database remains the source of truth.

func (s *Syncer) republishStaff(ctx context.Context, m *model.Staff) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishStaff(ctx, m); err != nil {
		log.Printf("sync: republish staff %s: %v", m.UUID, err)
	}
}

func (s *Syncer) republishClient(ctx context.Context, m *model.Client, contacts []model.Contact) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishClient(ctx, m, contacts); err != nil {
		log.Printf("sync: republish client %s: %v", m.UUID, err)
	}
}

func (s *Syncer) republishJob(ctx context.Context, m *model.Job, assignments []model.JobAssignment, tasks []model.Task) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJob(ctx, m, assignments, tasks); err != nil {
		log.Printf("sync: republish job %s: %v", m.JobID, err)
	}
}
