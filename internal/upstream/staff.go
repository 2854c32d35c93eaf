package upstream

import "context"

// StaffRecord is one <Staff> element from the staff list endpoint.
type StaffRecord struct {
	UUID        string `xml:"UUID"`
	Name        string `xml:"Name"`
	Email       string `xml:"Email"`
	Mobile      string `xml:"Mobile"`
	Phone       string `xml:"Phone"`
	PayrollCode string `xml:"PayrollCode"`
	WebURL      string `xml:"WebUrl"`
}

type staffListResponse struct {
	Status string        `xml:"Status"`
	Staff  []StaffRecord `xml:"StaffList>Staff"`
}

// ListStaff fetches every staff member.
func (c *Client) ListStaff(ctx context.Context) ([]StaffRecord, error) {
	var resp staffListResponse
	if err := c.get(ctx, "staff.api/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Staff, nil
}
