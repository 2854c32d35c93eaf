package model

// Staff represents one staff member synchronized from the upstream
// practice-management API. The upstream UUID is the stable business
// identifier; the numeric ID is only the local surrogate key.
//
// Fields:
//  ID          – primary key identifier.
//  UUID        – upstream staff UUID (unique).
//  Name        – display name.
//  Email       – email address, used to link application users to staff.
//  Mobile      – mobile number.
//  Phone       – landline number.
//  PayrollCode – payroll system reference.
//  WebURL      – link back to the staff page in the upstream system.
type Staff struct {
	ID          uint64 // staff.id
	UUID        string // staff.uuid
	Name        string // staff.name
	Email       string // staff.email
	Mobile      string // staff.mobile
	Phone       string // staff.phone
	PayrollCode string // staff.payroll_code
	WebURL      string // staff.web_url
}
