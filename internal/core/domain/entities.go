package domain

import "time"

// ClientType is the tier of a client. It selects the credit limit policy.
type ClientType string

const (
	ClientTypeNormal        ClientType = "NormalClient"
	ClientTypeImportant     ClientType = "ImportantClient"
	ClientTypeVeryImportant ClientType = "VeryImportantClient"
)

// Client represents a client from the client directory (read only)
type Client struct {
	ID   int
	Type ClientType
	Name string
}

// CandidateUser is the user record assembled during one admission attempt.
// CreditLimit is only meaningful when HasCreditLimit is true.
type CandidateUser struct {
	FirstName      string
	LastName       string
	Email          string
	DateOfBirth    time.Time
	Client         Client
	HasCreditLimit bool
	CreditLimit    int
}

// RejectionReason explains why an attempt was turned down by policy.
type RejectionReason string

const (
	ReasonInvalidInput            RejectionReason = "invalid_input"
	ReasonTooYoung                RejectionReason = "too_young"
	ReasonInsufficientCreditLimit RejectionReason = "insufficient_credit_limit"
)

// Decision is the outcome of an admission attempt that reached a verdict.
// Data integrity failures are not decisions; they are returned as errors.
type Decision struct {
	Admitted bool
	Reason   RejectionReason
	User     *CandidateUser
}

// Admit builds an admitted decision for user.
func Admit(user CandidateUser) Decision {
	return Decision{Admitted: true, User: &user}
}

// Reject builds a rejected decision. user may be nil when the attempt
// was rejected before a user was assembled.
func Reject(reason RejectionReason, user *CandidateUser) Decision {
	return Decision{Reason: reason, User: user}
}
