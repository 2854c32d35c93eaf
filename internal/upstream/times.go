package upstream

import (
	"context"
	"net/url"
	"time"
)

// TimeRecord is one <Time> element from the time range endpoint. Job,
// task and staff details arrive inline; the entry date carries a
// midnight time component.
type TimeRecord struct {
	UUID            string     `xml:"UUID"`
	Job             JobRef     `xml:"Job"`
	Task            ManagerRef `xml:"Task"`
	Staff           ManagerRef `xml:"Staff"`
	Date            string     `xml:"Date"`
	Minutes         int        `xml:"Minutes"`
	Note            string     `xml:"Note"`
	Billable        string     `xml:"Billable"`
	InvoiceTaskUUID string     `xml:"InvoiceTaskUUID"`
}

// JobRef is the <Job> sub-element of a time entry: jobs are referenced
// by their human-facing number, not their UUID.
type JobRef struct {
	ID   string `xml:"ID"`
	Name string `xml:"Name"`
}

type timeListResponse struct {
	Status string       `xml:"Status"`
	Times  []TimeRecord `xml:"Times>Time"`
}

// ListTimes fetches one staff member's time entries with entry dates in
// [from, to].
func (c *Client) ListTimes(ctx context.Context, staffUUID string, from, to time.Time) ([]TimeRecord, error) {
	params := url.Values{
		"from": {from.Format(apiDate)},
		"to":   {to.Format(apiDate)},
	}
	var resp timeListResponse
	if err := c.get(ctx, "time.api/staff/"+staffUUID, params, &resp); err != nil {
		return nil, err
	}
	return resp.Times, nil
}

// EntryDate returns the entry's calendar date, or nil when missing.
func (t TimeRecord) EntryDate() *time.Time { return parseAPITime(t.Date) }
