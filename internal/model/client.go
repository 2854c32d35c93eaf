package model

// Client represents an upstream client (customer organisation). Address
// and manager details are stored denormalized exactly as the upstream
// XML delivers them.
//
// Fields:
//  ID                 – primary key identifier.
//  UUID               – upstream client UUID (unique).
//  Name               – client name.
//  Email              – contact email.
//  Phone              – phone number.
//  Fax                – fax number.
//  Website            – website URL.
//  Address/City/Region/PostCode/Country – default address parts.
//  IsProspect         – prospect flag from upstream.
//  IsArchived         – archived flag; also toggled locally by the API.
//  IsDeleted          – soft-delete flag from upstream.
//  AccountManagerUUID / AccountManagerName – denormalized manager copy.
//  JobManagerUUID / JobManagerName         – denormalized manager copy.
//  TypeName           – client type label.
//  WebURL             – link back to the upstream client page.
type Client struct {
	ID                 uint64 // clients.id
	UUID               string // clients.uuid
	Name               string // clients.name
	Email              string // clients.email
	Phone              string // clients.phone
	Fax                string // clients.fax
	Website            string // clients.website
	Address            string // clients.address
	City               string // clients.city
	Region             string // clients.region
	PostCode           string // clients.post_code
	Country            string // clients.country
	IsProspect         bool   // clients.is_prospect
	IsArchived         bool   // clients.is_archived
	IsDeleted          bool   // clients.is_deleted
	AccountManagerUUID string // clients.account_manager_uuid
	AccountManagerName string // clients.account_manager_name
	JobManagerUUID     string // clients.job_manager_uuid
	JobManagerName     string // clients.job_manager_name
	TypeName           string // clients.type_name
	WebURL             string // clients.web_url
}

// Contact is a person attached to a Client.
//
// Fields:
//  ID         – primary key identifier.
//  UUID       – upstream contact UUID (unique).
//  ClientUUID – owning client's UUID.
//  IsPrimary  – whether this is the client's primary contact.
//  Name       – contact name.
//  Salutation – salutation used in correspondence.
//  Addressee  – addressee line.
//  Mobile     – mobile number.
//  Email      – email address.
//  Phone      – phone number.
//  Position   – job title within the client organisation.
type Contact struct {
	ID         uint64 // contacts.id
	UUID       string // contacts.uuid
	ClientUUID string // contacts.client_uuid
	IsPrimary  bool   // contacts.is_primary
	Name       string // contacts.name
	Salutation string // contacts.salutation
	Addressee  string // contacts.addressee
	Mobile     string // contacts.mobile
	Email      string // contacts.email
	Phone      string // contacts.phone
	Position   string // contacts.position
}
