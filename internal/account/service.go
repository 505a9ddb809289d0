package account

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/repository"
)

// AddressRules is the validator tag every caller address must satisfy
const AddressRules = "required,max=128,printascii"

// Service resolves caller addresses into accounts
type Service interface {
	// Resolve returns the account for address, creating it on first sight
	Resolve(ctx context.Context, address string) (*domain.Account, error)
	// Get returns an existing account
	Get(ctx context.Context, address string) (*domain.Account, error)
}

type service struct {
	repo     repository.Account
	cache    *accountCache
	validate *validator.Validate
}

// NewService creates an account service with an LRU cache of cacheSize entries
func NewService(repo repository.Account, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    newAccountCache(cacheSize, cacheTTL),
		validate: validator.New(),
	}
}

func (s *service) checkAddress(address string) error {
	if err := s.validate.Var(address, AddressRules); err != nil {
		return fmt.Errorf("%w: account address: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// Resolve returns the account for address, creating it on first sight
func (s *service) Resolve(ctx context.Context, address string) (*domain.Account, error) {
	if err := s.checkAddress(address); err != nil {
		return nil, err
	}
	if a, ok := s.cache.Get(address); ok {
		return a, nil
	}

	a, err := s.repo.UpsertAccount(ctx, &domain.Account{ID: uuid.NewString(), Address: address})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	logger.FromContext(ctx).Debug("Account resolved", "address", address, "account_id", a.ID)
	s.cache.Set(a)
	return a, nil
}

// Get returns an existing account
func (s *service) Get(ctx context.Context, address string) (*domain.Account, error) {
	if err := s.checkAddress(address); err != nil {
		return nil, err
	}
	if a, ok := s.cache.Get(address); ok {
		return a, nil
	}

	a, err := s.repo.GetAccountByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, address)
	}
	s.cache.Set(a)
	return a, nil
}
