package models

// Principal is the role-independent view of anything that can
// authenticate. The password-reset flow works entirely against this
// shape; which table it came from is the store's business.
type Principal struct {
	ID          string
	Email       string
	FullName    string
	PhoneNumber string
	IsActive    bool
}
