package domain

import (
	"strings"
	"time"
)

// RegistrationRequest holds the fields submitted for one admission attempt.
type RegistrationRequest struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	ClientID    int
}

// IsInvalid reports whether the submitted fields fail the structural check.
// The email is only rejected when it has neither "@" nor ".".
func (r RegistrationRequest) IsInvalid() bool {
	return r.FirstName == "" ||
		r.LastName == "" ||
		(!strings.Contains(r.Email, "@") && !strings.Contains(r.Email, "."))
}

// Age returns the applicant's age in whole years at now.
func (r RegistrationRequest) Age(now time.Time) int {
	return Age(r.DateOfBirth, now)
}

// Age computes whole years between birth and now. A birthday falling on now
// counts as already reached.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// CreditIdentityName is the canonical form of a last name for credit record
// lookup. Every store and cache of credit limits keys on this form.
func CreditIdentityName(lastName string) string {
	return strings.ToLower(strings.TrimSpace(lastName))
}
