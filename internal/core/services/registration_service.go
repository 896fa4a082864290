package services

import (
	"context"
	"time"

	"user-admission/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default admission policy
const (
	DefaultMinimumAge         = 21
	DefaultMinimumCreditLimit = 500
)

// Outcome labels reported to the AdmissionCounter
const (
	OutcomeAdmitted = "admitted"
	OutcomeError    = "error"
)

// Policy holds the process-wide admission thresholds.
type Policy struct {
	MinimumAge         int
	MinimumCreditLimit int
}

// DefaultPolicy returns the standard admission thresholds
func DefaultPolicy() Policy {
	return Policy{
		MinimumAge:         DefaultMinimumAge,
		MinimumCreditLimit: DefaultMinimumCreditLimit,
	}
}

// RegistrationService admits new users after validation, age and credit checks
type RegistrationService struct {
	clients    ClientDirectory
	users      UserStore
	strategies *CreditLimitStrategyFactory
	policy     Policy
	now        func() time.Time
	counter    AdmissionCounter
	log        *zap.Logger
}

// Option configures a RegistrationService
type Option func(*RegistrationService)

// WithClock replaces the wall clock used for the age check
func WithClock(now func() time.Time) Option {
	return func(s *RegistrationService) {
		s.now = now
	}
}

// WithPolicy overrides the default thresholds
func WithPolicy(p Policy) Option {
	return func(s *RegistrationService) {
		s.policy = p
	}
}

// WithCounter reports each attempt's outcome to c. A nil c is ignored
func WithCounter(c AdmissionCounter) Option {
	return func(s *RegistrationService) {
		if c != nil {
			s.counter = c
		}
	}
}

// WithLogger sets the service logger. A nil l keeps the no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(s *RegistrationService) {
		if l != nil {
			s.log = l
		}
	}
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	clients ClientDirectory,
	creditScores CreditScoreProvider,
	users UserStore,
	opts ...Option,
) *RegistrationService {
	s := &RegistrationService{
		clients:    clients,
		users:      users,
		strategies: NewCreditLimitStrategyFactory(creditScores),
		policy:     DefaultPolicy(),
		now:        time.Now,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddUserFields is the positional form of AddUser.
func (s *RegistrationService) AddUserFields(
	ctx context.Context,
	firstName, lastName, email string,
	dateOfBirth time.Time,
	clientID int,
) (bool, error) {
	return s.AddUser(ctx, domain.RegistrationRequest{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DateOfBirth: dateOfBirth,
		ClientID:    clientID,
	})
}

// AddUser returns true when the user was admitted and persisted, false when
// policy rejected the attempt. Errors are data integrity failures.
func (s *RegistrationService) AddUser(ctx context.Context, req domain.RegistrationRequest) (bool, error) {
	decision, err := s.Admit(ctx, req)
	if err != nil {
		return false, err
	}
	return decision.Admitted, nil
}

// Admit runs one admission attempt. Lookup failures from the collaborators
// are returned unchanged and never turned into a rejection.
func (s *RegistrationService) Admit(ctx context.Context, req domain.RegistrationRequest) (domain.Decision, error) {
	log := s.log.With(
		zap.String("attempt_id", uuid.NewString()),
		zap.Int("client_id", req.ClientID),
	)

	decision, err := s.admit(ctx, req)
	if err != nil {
		log.Warn("admission failed", zap.Error(err))
		s.observe(OutcomeError)
		return domain.Decision{}, err
	}

	if decision.Admitted {
		log.Info("user admitted",
			zap.Bool("has_credit_limit", decision.User.HasCreditLimit),
			zap.Int("credit_limit", decision.User.CreditLimit),
		)
		s.observe(OutcomeAdmitted)
	} else {
		log.Info("user rejected", zap.String("reason", string(decision.Reason)))
		s.observe(string(decision.Reason))
	}
	return decision, nil
}

func (s *RegistrationService) admit(ctx context.Context, req domain.RegistrationRequest) (domain.Decision, error) {
	// 1. Structural and age checks, before any lookup
	if req.IsInvalid() {
		return domain.Reject(domain.ReasonInvalidInput, nil), nil
	}
	if s.isTooYoung(req) {
		return domain.Reject(domain.ReasonTooYoung, nil), nil
	}

	// 2. Resolve client
	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return domain.Decision{}, err
	}

	// 3. Build user with its credit limit
	user, err := s.makeUser(ctx, req, client)
	if err != nil {
		return domain.Decision{}, err
	}

	// 4. Credit limit gate, then persist
	if s.doesNotHaveEnoughCreditLimit(user) {
		return domain.Reject(domain.ReasonInsufficientCreditLimit, &user), nil
	}
	if err := s.users.AddUser(ctx, user); err != nil {
		return domain.Decision{}, err
	}
	return domain.Admit(user), nil
}

func (s *RegistrationService) makeUser(ctx context.Context, req domain.RegistrationRequest, client domain.Client) (domain.CandidateUser, error) {
	user := domain.CandidateUser{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Client:      client,
	}

	strategy, err := s.strategies.StrategyFor(client)
	if err != nil {
		return domain.CandidateUser{}, err
	}

	user.HasCreditLimit = strategy.HasCreditLimit()
	user.CreditLimit, err = strategy.CalculateCreditLimit(ctx, user)
	if err != nil {
		return domain.CandidateUser{}, err
	}
	return user, nil
}

func (s *RegistrationService) isTooYoung(req domain.RegistrationRequest) bool {
	return req.Age(s.now()) < s.policy.MinimumAge
}

func (s *RegistrationService) doesNotHaveEnoughCreditLimit(user domain.CandidateUser) bool {
	return user.HasCreditLimit && user.CreditLimit < s.policy.MinimumCreditLimit
}

func (s *RegistrationService) observe(outcome string) {
	if s.counter != nil {
		s.counter.ObserveAdmission(outcome)
	}
}
