package upstream

import (
	"context"
	"net/url"
)

// ManagerRef is a <AccountManager>/<JobManager> style sub-element.
type ManagerRef struct {
	UUID string `xml:"UUID"`
	Name string `xml:"Name"`
}

// ContactRecord is one <Contact> element nested under a client.
type ContactRecord struct {
	UUID       string `xml:"UUID"`
	IsPrimary  string `xml:"IsPrimary"`
	Name       string `xml:"Name"`
	Salutation string `xml:"Salutation"`
	Addressee  string `xml:"Addressee"`
	Mobile     string `xml:"Mobile"`
	Email      string `xml:"Email"`
	Phone      string `xml:"Phone"`
	Position   string `xml:"Position"`
}

// ClientRecord is one <Client> element from the client list endpoint,
// including its nested contacts.
type ClientRecord struct {
	UUID           string          `xml:"UUID"`
	Name           string          `xml:"Name"`
	Email          string          `xml:"Email"`
	Phone          string          `xml:"Phone"`
	Fax            string          `xml:"Fax"`
	Website        string          `xml:"Website"`
	Address        string          `xml:"Address"`
	City           string          `xml:"City"`
	Region         string          `xml:"Region"`
	PostCode       string          `xml:"PostCode"`
	Country        string          `xml:"Country"`
	IsProspect     string          `xml:"IsProspect"`
	IsArchived     string          `xml:"IsArchived"`
	IsDeleted      string          `xml:"IsDeleted"`
	AccountManager ManagerRef      `xml:"AccountManager"`
	JobManager     ManagerRef      `xml:"JobManager"`
	TypeName       string          `xml:"Type>Name"`
	WebURL         string          `xml:"WebUrl"`
	Contacts       []ContactRecord `xml:"Contacts>Contact"`
}

type clientListResponse struct {
	Status  string         `xml:"Status"`
	Clients []ClientRecord `xml:"Clients>Client"`
}

// ListClients fetches every client with nested contact details.
func (c *Client) ListClients(ctx context.Context) ([]ClientRecord, error) {
	params := url.Values{"detailed": {"true"}}
	var resp clientListResponse
	if err := c.get(ctx, "client.api/list", params, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// IsTrue interprets the upstream boolean encoding ("true"/"false",
// occasionally "Yes"/"No").
func IsTrue(s string) bool {
	switch s {
	case "true", "True", "Yes", "yes", "1":
		return true
	}
	return false
}
