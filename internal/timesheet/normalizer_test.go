package timesheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeItemRoundsHoursToMinutes(t *testing.T) {
	item := SubmissionItem{
		TaskUUID: "task-1",
		JobID:    "J001",
		Entries: []SubmissionEntry{
			{Date: "2025-01-06", Hours: "1.5"},
			{Date: "2025-01-07", Hours: "0.25"},
			{Date: "2025-01-08", Hours: "0.169"}, // 10.14 minutes -> 10
		},
	}
	entries, err := NormalizeItem("staff-1", item)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 90, entries[0].Minutes)
	assert.Equal(t, 15, entries[1].Minutes)
	assert.Equal(t, 10, entries[2].Minutes)
	assert.Equal(t, date("2025-01-06"), entries[0].Date)
	assert.Equal(t, "staff-1", entries[0].StaffUUID)
	assert.Equal(t, "task-1", entries[0].TaskUUID)
	assert.Equal(t, "J001", entries[0].JobID)
}

func TestNormalizeItemJoinsNotesWithNewline(t *testing.T) {
	item := SubmissionItem{
		TaskUUID: "task-1",
		JobID:    "J001",
		Entries: []SubmissionEntry{
			{Date: "2025-01-06", Hours: "1", Notes: []string{"called client", "sent summary"}},
			{Date: "2025-01-07", Hours: "1"},
		},
	}
	entries, err := NormalizeItem("staff-1", item)
	require.NoError(t, err)
	assert.Equal(t, "called client\nsent summary", entries[0].Note)
	assert.Equal(t, "", entries[1].Note)
}

func TestNormalizeItemRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		entry SubmissionEntry
		field string
	}{
		{"bad date", SubmissionEntry{Date: "06/01/2025", Hours: "1"}, "date"},
		{"empty date", SubmissionEntry{Date: "", Hours: "1"}, "date"},
		{"negative hours", SubmissionEntry{Date: "2025-01-06", Hours: "-1"}, "hours"},
		{"non-numeric hours", SubmissionEntry{Date: "2025-01-06", Hours: "two"}, "hours"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeItem("staff-1", SubmissionItem{Entries: []SubmissionEntry{tc.entry}})
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNormalizeItemEmptyEntries(t *testing.T) {
	entries, err := NormalizeItem("staff-1", SubmissionItem{TaskUUID: "task-1", JobID: "J001"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
