package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"user-admission/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreditLimitStrategyFactory_StrategyFor(t *testing.T) {
	dob := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		clientType     domain.ClientType
		score          int
		callsProvider  bool
		hasCreditLimit bool
		creditLimit    int
	}{
		{"very important client has no limit", domain.ClientTypeVeryImportant, 300, false, false, 0},
		{"important client gets doubled unenforced limit", domain.ClientTypeImportant, 300, true, false, 600},
		{"normal client gets plain enforced limit", domain.ClientTypeNormal, 300, true, true, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			scores := new(mockCreditScores)
			if tt.callsProvider {
				scores.On("GetCreditLimit", ctx, "Kowalski", dob).Return(tt.score, nil).Once()
			}

			strategy, err := NewCreditLimitStrategyFactory(scores).StrategyFor(domain.Client{ID: 1, Type: tt.clientType})
			require.NoError(t, err)

			limit, err := strategy.CalculateCreditLimit(ctx, domain.CandidateUser{LastName: "Kowalski", DateOfBirth: dob})
			require.NoError(t, err)

			assert.Equal(t, tt.hasCreditLimit, strategy.HasCreditLimit())
			assert.Equal(t, tt.creditLimit, limit)
			scores.AssertExpectations(t)
			if !tt.callsProvider {
				scores.AssertNotCalled(t, "GetCreditLimit", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCreditLimitStrategyFactory_UnknownType(t *testing.T) {
	_, err := NewCreditLimitStrategyFactory(new(mockCreditScores)).StrategyFor(domain.Client{ID: 9, Type: "GoldClient"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidClientType))

	var typed *domain.InvalidClientTypeError
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, domain.ClientType("GoldClient"), typed.Type)
}

func TestCreditLimitStrategies_ProviderErrorPropagates(t *testing.T) {
	ctx := context.Background()
	dob := time.Date(1990, time.May, 5, 0, 0, 0, 0, time.UTC)
	providerErr := &domain.ClientCreditUnavailableError{LastName: "Wick"}

	for _, clientType := range []domain.ClientType{domain.ClientTypeImportant, domain.ClientTypeNormal} {
		t.Run(string(clientType), func(t *testing.T) {
			scores := new(mockCreditScores)
			scores.On("GetCreditLimit", ctx, "Wick", dob).Return(0, providerErr)

			strategy, err := NewCreditLimitStrategyFactory(scores).StrategyFor(domain.Client{Type: clientType})
			require.NoError(t, err)

			_, err = strategy.CalculateCreditLimit(ctx, domain.CandidateUser{LastName: "Wick", DateOfBirth: dob})
			assert.Same(t, providerErr, err)
		})
	}
}
