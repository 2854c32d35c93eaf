package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomatrix/timekeeper/internal/model"
	"github.com/neomatrix/timekeeper/internal/queue"
)

type captureBus struct {
	keys     []string
	payloads []any
}

func (b *captureBus) Publish(_ context.Context, routingKey string, v any) error {
	b.keys = append(b.keys, routingKey)
	b.payloads = append(b.payloads, v)
	return nil
}

func TestPublishStaffRoutingKeys(t *testing.T) {
	bus := &captureBus{}
	r := NewRepublisher(nil, nil, nil, nil, bus)

	s := &model.Staff{UUID: "abc-123", Name: "Alice Smith", Email: "alice@example.com"}
	require.NoError(t, r.PublishStaff(context.Background(), s))

	require.Len(t, bus.keys, 3)
	assert.Equal(t, "staff.abc-123.details", bus.keys[0])
	assert.Equal(t, "staff.abc-123.status", bus.keys[1])
	assert.Equal(t, "events.staffUpdated", bus.keys[2])

	ev, ok := bus.payloads[2].(queue.EntityUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "staff_updated", ev.EventType)
	assert.Equal(t, "abc-123", ev.UUID)
	assert.Equal(t, "Alice Smith", ev.Name)
	assert.NotEmpty(t, ev.Timestamp)
}

func TestPublishClientIncludesContacts(t *testing.T) {
	bus := &captureBus{}
	r := NewRepublisher(nil, nil, nil, nil, bus)

	c := &model.Client{UUID: "cl-1", Name: "Acme Ltd"}
	contacts := []model.Contact{
		{UUID: "ct-1", ClientUUID: "cl-1", Name: "Bob", IsPrimary: true},
		{UUID: "ct-2", ClientUUID: "cl-1", Name: "Carol"},
	}
	require.NoError(t, r.PublishClient(context.Background(), c, contacts))

	require.Len(t, bus.keys, 4)
	assert.Equal(t, "clients.cl-1.details", bus.keys[0])
	assert.Equal(t, "clients.cl-1.contacts.ct-1.details", bus.keys[1])
	assert.Equal(t, "clients.cl-1.contacts.ct-2.details", bus.keys[2])
	assert.Equal(t, "events.clientUpdated", bus.keys[3])
}

func TestPublishJobIncludesStaffAndTasks(t *testing.T) {
	bus := &captureBus{}
	r := NewRepublisher(nil, nil, nil, nil, bus)

	j := &model.Job{JobID: "J001516", UUID: "job-1", Name: "Annual Accounts", State: "In Progress"}
	assignments := []model.JobAssignment{{JobUUID: "job-1", StaffUUID: "st-1", StaffName: "Alice"}}
	tasks := []model.Task{{UUID: "tk-1", JobUUID: "job-1", Name: "Preparation", Billable: true}}

	require.NoError(t, r.PublishJob(context.Background(), j, assignments, tasks))

	require.Len(t, bus.keys, 4)
	assert.Equal(t, "jobs.job-1.details", bus.keys[0])
	assert.Equal(t, "jobs.job-1.assigned-staff", bus.keys[1])
	assert.Equal(t, "jobs.job-1.tasks.tk-1.details", bus.keys[2])
	assert.Equal(t, "events.jobUpdated", bus.keys[3])

	staffList, ok := bus.payloads[1].([]assignedStaff)
	require.True(t, ok)
	require.Len(t, staffList, 1)
	assert.Equal(t, "Alice", staffList[0].StaffName)
}
