package repositories

import (
	"context"
	"errors"
	"fmt"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// GetByID gets a client by ID
func (r *clientRepository) GetByID(ctx context.Context, id int) (domain.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Client{}, &domain.ClientNotFoundError{ID: id}
		}
		return domain.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return client.ToDomain(), nil
}

// List lists all clients ordered by ID
func (r *clientRepository) List(ctx context.Context) ([]*models.Client, error) {
	var clients []*models.Client
	if err := r.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Upsert creates a client or updates its name and type
func (r *clientRepository) Upsert(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "type", "updated_at"}),
		}).
		Create(client).Error
}
