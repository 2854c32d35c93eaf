package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomatrix/timekeeper/internal/upstream"
)

func TestMapClientFlags(t *testing.T) {
	rec := upstream.ClientRecord{
		UUID:       "cl-1",
		Name:       "Acme Ltd",
		IsProspect: "false",
		IsArchived: "true",
		IsDeleted:  "No",
		AccountManager: upstream.ManagerRef{
			UUID: "st-9", Name: "Alice",
		},
	}
	m := mapClient(rec)
	assert.False(t, m.IsProspect)
	assert.True(t, m.IsArchived)
	assert.False(t, m.IsDeleted)
	assert.Equal(t, "st-9", m.AccountManagerUUID)
	assert.Equal(t, "Alice", m.AccountManagerName)
}

func TestMapJobDates(t *testing.T) {
	rec := upstream.JobRecord{
		ID:        "J001516",
		UUID:      "job-1",
		Name:      "Annual Accounts",
		StartDate: "2025-01-06T00:00:00",
		DueDate:   "",
		Client:    upstream.ManagerRef{UUID: "cl-1", Name: "Acme Ltd"},
	}
	m := mapJob(rec)
	require.NotNil(t, m.StartDate)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), *m.StartDate)
	assert.Nil(t, m.DueDate)
	assert.Equal(t, "J001516", m.JobID)
	assert.Equal(t, "cl-1", m.ClientUUID)
}

func TestMapTaskBillable(t *testing.T) {
	m := mapTask("job-1", upstream.TaskRecord{
		UUID:             "tk-1",
		Name:             "Preparation",
		EstimatedMinutes: 480,
		Completed:        "false",
		Billable:         "true",
	})
	assert.Equal(t, "job-1", m.JobUUID)
	assert.True(t, m.Billable)
	assert.False(t, m.Completed)
	assert.Equal(t, 480, m.EstimatedMinutes)
}

func TestMapTimeEntry(t *testing.T) {
	rec := upstream.TimeRecord{
		UUID:            "tm-1",
		Job:             upstream.JobRef{ID: "J001516", Name: "Annual Accounts"},
		Task:            upstream.ManagerRef{UUID: "tk-1", Name: "Preparation"},
		Staff:           upstream.ManagerRef{UUID: "st-1", Name: "Alice"},
		Date:            "2025-01-08T00:00:00",
		Minutes:         90,
		Note:            "morning call",
		Billable:        "true",
		InvoiceTaskUUID: "inv-1",
	}
	m := mapTime(rec)
	assert.Equal(t, "J001516", m.JobID)
	assert.Equal(t, "tk-1", m.TaskUUID)
	assert.Equal(t, "st-1", m.StaffUUID)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), m.EntryDate)
	assert.Equal(t, 90, m.Minutes)
	assert.True(t, m.Billable)
	require.NotNil(t, m.InvoiceTaskUUID)
	assert.Equal(t, "inv-1", *m.InvoiceTaskUUID)
}

func TestMapTimeEntryEmptyInvoiceTask(t *testing.T) {
	m := mapTime(upstream.TimeRecord{UUID: "tm-2", Date: "2025-01-08T00:00:00"})
	assert.Nil(t, m.InvoiceTaskUUID)
}
