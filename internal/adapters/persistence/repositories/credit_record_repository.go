package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// creditRecordRepository implements CreditRecordRepository interface
// Records are keyed by canonical last name and calendar date of birth
type creditRecordRepository struct {
	db *gorm.DB
}

// NewCreditRecordRepository creates a new credit record repository
func NewCreditRecordRepository(db *gorm.DB) CreditRecordRepository {
	return &creditRecordRepository{db: db}
}

// GetCreditLimit gets the credit limit recorded for an identity
func (r *creditRecordRepository) GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int, error) {
	var record models.CreditRecord
	err := r.db.WithContext(ctx).
		Where("last_name = ? AND date_of_birth = ?", domain.CreditIdentityName(lastName), models.CalendarDate(dateOfBirth)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &domain.ClientCreditUnavailableError{LastName: lastName}
		}
		return 0, fmt.Errorf("get credit record for %s: %w", lastName, err)
	}
	return record.CreditLimit, nil
}

// Upsert creates a credit record or replaces its limit
func (r *creditRecordRepository) Upsert(ctx context.Context, record *models.CreditRecord) error {
	record.LastName = domain.CreditIdentityName(record.LastName)
	record.DateOfBirth = models.CalendarDate(record.DateOfBirth)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "last_name"}, {Name: "date_of_birth"}},
			DoUpdates: clause.AssignmentColumns([]string{"credit_limit", "updated_at"}),
		}).
		Create(record).Error
}
