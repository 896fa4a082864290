package config

import (
	"context"
	"time"

	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/adapters/persistence/repositories"
	"user-admission/internal/core/domain"

	"go.uber.org/zap"
)

// Seeder handles database seeding
type Seeder struct {
	clients repositories.ClientRepository
	credits repositories.CreditRecordRepository
	log     *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(clients repositories.ClientRepository, credits repositories.CreditRecordRepository, log *zap.Logger) *Seeder {
	return &Seeder{clients: clients, credits: credits, log: log}
}

// DemoClients are the client accounts seeded in dev mode
func DemoClients() []models.Client {
	return []models.Client{
		{ID: 1, Name: "Kowalski Sp. z o.o.", Type: string(domain.ClientTypeNormal)},
		{ID: 2, Name: "Malewski Holding", Type: string(domain.ClientTypeImportant)},
		{ID: 3, Name: "Smith & Partners", Type: string(domain.ClientTypeVeryImportant)},
	}
}

// DemoCreditRecords are the credit bureau rows seeded in dev mode
func DemoCreditRecords() []models.CreditRecord {
	return []models.CreditRecord{
		{LastName: "Doe", DateOfBirth: date(1990, time.March, 12), CreditLimit: 10000},
		{LastName: "Kowalski", DateOfBirth: date(1985, time.July, 1), CreditLimit: 300},
		{LastName: "Kwiatkowski", DateOfBirth: date(1979, time.November, 23), CreditLimit: 1000},
		{LastName: "Malewski", DateOfBirth: date(1992, time.January, 30), CreditLimit: 400},
	}
}

// Run executes all seeders
// This is for development/testing only
func (s *Seeder) Run(ctx context.Context) error {
	s.log.Info("running database seeders")

	for _, c := range DemoClients() {
		if err := s.clients.Upsert(ctx, &c); err != nil {
			return err
		}
		s.log.Debug("seeded client", zap.Int("id", c.ID), zap.String("type", c.Type))
	}

	for _, r := range DemoCreditRecords() {
		if err := s.credits.Upsert(ctx, &r); err != nil {
			return err
		}
		s.log.Debug("seeded credit record", zap.String("last_name", r.LastName))
	}

	s.log.Info("database seeding completed")
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
