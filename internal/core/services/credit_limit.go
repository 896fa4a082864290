package services

import (
	"context"

	"user-admission/internal/core/domain"
)

// CreditLimitStrategy decides whether a credit limit applies to a user and
// what its value is.
type CreditLimitStrategy interface {
	HasCreditLimit() bool
	CalculateCreditLimit(ctx context.Context, user domain.CandidateUser) (int, error)
}

// CreditLimitStrategyFactory selects the strategy for a client's tier.
// It holds no per-request state and can be shared.
type CreditLimitStrategyFactory struct {
	creditScores CreditScoreProvider
}

// NewCreditLimitStrategyFactory creates a new strategy factory
func NewCreditLimitStrategyFactory(creditScores CreditScoreProvider) *CreditLimitStrategyFactory {
	return &CreditLimitStrategyFactory{creditScores: creditScores}
}

// StrategyFor maps the client tier to its strategy. Unknown tiers fail with
// *domain.InvalidClientTypeError.
func (f *CreditLimitStrategyFactory) StrategyFor(client domain.Client) (CreditLimitStrategy, error) {
	switch client.Type {
	case domain.ClientTypeVeryImportant:
		return noLimitStrategy{}, nil
	case domain.ClientTypeImportant:
		return doubledExternalStrategy{creditScores: f.creditScores}, nil
	case domain.ClientTypeNormal:
		return plainExternalStrategy{creditScores: f.creditScores}, nil
	default:
		return nil, &domain.InvalidClientTypeError{Type: client.Type}
	}
}

// noLimitStrategy applies to very important clients.
type noLimitStrategy struct{}

func (noLimitStrategy) HasCreditLimit() bool { return false }

func (noLimitStrategy) CalculateCreditLimit(context.Context, domain.CandidateUser) (int, error) {
	return 0, nil
}

// doubledExternalStrategy applies to important clients. The doubled limit is
// recorded on the user but never enforced.
type doubledExternalStrategy struct {
	creditScores CreditScoreProvider
}

func (doubledExternalStrategy) HasCreditLimit() bool { return false }

func (s doubledExternalStrategy) CalculateCreditLimit(ctx context.Context, user domain.CandidateUser) (int, error) {
	limit, err := s.creditScores.GetCreditLimit(ctx, user.LastName, user.DateOfBirth)
	if err != nil {
		return 0, err
	}
	return limit * 2, nil
}

// plainExternalStrategy applies to normal clients and is the only one whose
// limit is enforced.
type plainExternalStrategy struct {
	creditScores CreditScoreProvider
}

func (plainExternalStrategy) HasCreditLimit() bool { return true }

func (s plainExternalStrategy) CalculateCreditLimit(ctx context.Context, user domain.CandidateUser) (int, error) {
	return s.creditScores.GetCreditLimit(ctx, user.LastName, user.DateOfBirth)
}
