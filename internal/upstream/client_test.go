package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staffXML = `<Response>
  <Status>OK</Status>
  <StaffList>
    <Staff>
      <UUID>aaaa-1111</UUID>
      <Name>Ada Price</Name>
      <Email>ada@example.com</Email>
      <Mobile>021 555 001</Mobile>
      <Phone></Phone>
      <PayrollCode>AP01</PayrollCode>
    </Staff>
    <Staff>
      <UUID>bbbb-2222</UUID>
      <Name>Ben Okafor</Name>
    </Staff>
  </StaffList>
</Response>`

const timesXML = `<Response>
  <Status>OK</Status>
  <Times>
    <Time>
      <UUID>tttt-0001</UUID>
      <Job><ID>J001516</ID><Name>Annual accounts</Name></Job>
      <Task><UUID>task-1</UUID><Name>Bookkeeping</Name></Task>
      <Staff><UUID>aaaa-1111</UUID><Name>Ada Price</Name></Staff>
      <Date>2025-01-08T00:00:00</Date>
      <Minutes>90</Minutes>
      <Note>reconciled ledgers</Note>
      <Billable>true</Billable>
    </Time>
  </Times>
</Response>`

func TestListStaffDecodesAndAuthenticates(t *testing.T) {
	var gotAuth, gotAccount, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccount = r.Header.Get("account_id")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(staffXML))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "secret-token", "acct-42")
	staff, err := c.ListStaff(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "acct-42", gotAccount)
	assert.Equal(t, "/staff.api/list", gotPath)
	require.Len(t, staff, 2)
	assert.Equal(t, "aaaa-1111", staff[0].UUID)
	assert.Equal(t, "Ada Price", staff[0].Name)
	assert.Equal(t, "AP01", staff[0].PayrollCode)
	assert.Empty(t, staff[1].Email)
}

func TestListTimesParsesRangeAndDates(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(timesXML))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok", "acct")
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	times, err := c.ListTimes(context.Background(), "aaaa-1111", from, to)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "from=20250101")
	assert.Contains(t, gotQuery, "to=20250131")
	require.Len(t, times, 1)
	e := times[0]
	assert.Equal(t, "J001516", e.Job.ID)
	assert.Equal(t, 90, e.Minutes)
	assert.True(t, IsTrue(e.Billable))
	require.NotNil(t, e.EntryDate())
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), *e.EntryDate())
}

func TestGetSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "bad", "acct")
	_, err := c.ListStaff(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
