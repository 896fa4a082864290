package services

import (
	"context"
	"time"

	"user-admission/internal/core/domain"
)

// ClientDirectory looks up clients by id.
// Unknown ids fail with *domain.ClientNotFoundError.
type ClientDirectory interface {
	GetByID(ctx context.Context, id int) (domain.Client, error)
}

// CreditScoreProvider returns the external credit limit for an identity.
// Missing records fail with *domain.ClientCreditUnavailableError.
type CreditScoreProvider interface {
	GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int, error)
}

// UserStore persists admitted users.
type UserStore interface {
	AddUser(ctx context.Context, user domain.CandidateUser) error
}

// AdmissionCounter records the outcome of admission attempts.
type AdmissionCounter interface {
	ObserveAdmission(outcome string)
}

// AdmissionLedger counts users admitted since a point in time.
type AdmissionLedger interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// ReportSink receives the result of each admission report run.
type ReportSink interface {
	SetRecentAdmissions(n int64)
}
