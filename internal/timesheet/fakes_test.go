package timesheet

import (
	"context"
	"time"

	"github.com/neomatrix/timekeeper/internal/model"
)

// memStore is an in-memory Store that mirrors the natural-key unique
// constraint of the timesheets table. Entries keep insertion order so
// note-accumulation ordering is observable.
type memStore struct {
	records []*model.Timesheet
	creates int
	updates int

	// beforeCreate, when set, runs before each Create. Tests use it to
	// sneak a concurrent writer in between lookup and insert.
	beforeCreate func(s *memStore)
}

func (s *memStore) find(staffUUID, taskUUID, jobID string, date time.Time) *model.Timesheet {
	for _, r := range s.records {
		if r.StaffUUID == staffUUID && r.TaskUUID == taskUUID && r.JobID == jobID && r.EntryDate.Equal(date) {
			return r
		}
	}
	return nil
}

func (s *memStore) FindByNaturalKey(_ context.Context, staffUUID, taskUUID, jobID string, date time.Time) (*model.Timesheet, error) {
	if r := s.find(staffUUID, taskUUID, jobID, date); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) Create(_ context.Context, rec *model.Timesheet) error {
	if s.beforeCreate != nil {
		hook := s.beforeCreate
		s.beforeCreate = nil
		hook(s)
	}
	if s.find(rec.StaffUUID, rec.TaskUUID, rec.JobID, rec.EntryDate) != nil {
		return ErrConflict
	}
	cp := *rec
	s.records = append(s.records, &cp)
	s.creates++
	return nil
}

func (s *memStore) Update(_ context.Context, rec *model.Timesheet) error {
	for i, r := range s.records {
		if r.UUID == rec.UUID {
			cp := *rec
			s.records[i] = &cp
			s.updates++
			return nil
		}
	}
	return nil
}

func (s *memStore) QueryRange(_ context.Context, staffUUID string, from, to time.Time) ([]model.Timesheet, error) {
	var out []model.Timesheet
	for _, r := range s.records {
		if r.StaffUUID == staffUUID && !r.EntryDate.Before(from) && !r.EntryDate.After(to) {
			out = append(out, *r)
		}
	}
	return out, nil
}

// memResolvers serves staff, tasks and jobs from maps. Missing entries
// resolve to nil without error, matching the repository contract.
type memResolvers struct {
	staff map[string]model.Staff
	tasks map[string]model.Task
	jobs  map[string]model.Job
}

func (m *memResolvers) ResolveStaff(_ context.Context, uuid string) (*model.Staff, error) {
	if s, ok := m.staff[uuid]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *memResolvers) ResolveTask(_ context.Context, uuid string) (*model.Task, error) {
	if t, ok := m.tasks[uuid]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *memResolvers) ResolveTasks(_ context.Context, uuids []string) (map[string]model.Task, error) {
	out := make(map[string]model.Task, len(uuids))
	for _, id := range uuids {
		if t, ok := m.tasks[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (m *memResolvers) ResolveJob(_ context.Context, jobID string) (*model.Job, error) {
	if j, ok := m.jobs[jobID]; ok {
		return &j, nil
	}
	return nil, nil
}

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
