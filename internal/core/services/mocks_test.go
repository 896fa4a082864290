package services

import (
	"context"
	"time"

	"user-admission/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type mockClientDirectory struct {
	mock.Mock
}

func (m *mockClientDirectory) GetByID(ctx context.Context, id int) (domain.Client, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Client), args.Error(1)
}

type mockCreditScores struct {
	mock.Mock
}

func (m *mockCreditScores) GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int, error) {
	args := m.Called(ctx, lastName, dateOfBirth)
	return args.Int(0), args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) AddUser(ctx context.Context, user domain.CandidateUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type recordingCounter struct {
	outcomes []string
}

func (c *recordingCounter) ObserveAdmission(outcome string) {
	c.outcomes = append(c.outcomes, outcome)
}
