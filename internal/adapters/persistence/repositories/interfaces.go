package repositories

import (
	"context"
	"time"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/core/domain"
)

// ClientRepository defines client repository interface
// The admission flow only reads clients; Upsert exists for seeding
type ClientRepository interface {
	GetByID(ctx context.Context, id int) (domain.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	Upsert(ctx context.Context, client *models.Client) error
}

// CreditRecordRepository defines credit record repository interface
type CreditRecordRepository interface {
	GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int, error)
	Upsert(ctx context.Context, record *models.CreditRecord) error
}

// UserRepository defines user repository interface
type UserRepository interface {
	AddUser(ctx context.Context, user domain.CandidateUser) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
