package game

import (
	"context"
	"fmt"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/repository"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// Service defines the merge game interface. Every call acts on owner's session.
type Service interface {
	StartGame(ctx context.Context, owner string) (*domain.GameSession, error)
	GetSession(ctx context.Context, owner string) (*domain.GameSession, error)
	DropFruit(ctx context.Context, owner string) (*domain.GameSession, error)
	MergeFruits(ctx context.Context, owner string, i, j int) (*domain.GameSession, error)
	StartClaim(ctx context.Context, owner string) (*domain.GameSession, error)
	CompleteHarvest(ctx context.Context, owner string) (*domain.GameSession, error)
	TriggerGameOver(ctx context.Context, owner string) (*domain.GameSession, error)
	ResetGame(ctx context.Context, owner string) (*domain.GameSession, error)
	WithdrawSeeds(ctx context.Context, owner string, amount int64) (*domain.GameSession, *domain.SeedBag, error)
}

type service struct {
	repo      repository.Game
	publisher event.Publisher
	clock     utils.Clock
	engine    *Engine
	ledger    *ledger.Engine
}

// NewService creates a new game service
func NewService(repo repository.Game, cfg config.SessionConfig, rng utils.RandomSource, clock utils.Clock, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		engine:    NewEngine(cfg, rng),
		ledger:    ledger.NewEngine(),
	}
}

// change is one event produced by a transition
type change struct {
	eventType string
	level     domain.FruitLevel
	reward    int64
	amount    int64
}

// StartGame returns owner's session, creating it on first call
func (s *service) StartGame(ctx context.Context, owner string) (*domain.GameSession, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := tx.GetSessionForUpdate(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	if session != nil {
		return session, nil
	}

	session = s.engine.NewSession(owner)
	if err := tx.InsertSession(ctx, session); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.FromContext(ctx).Info("Game started", "owner", owner, "session_id", session.ID)
	s.publish(ctx, session, change{eventType: domain.EventTypeGameStarted})
	return session, nil
}

// GetSession returns owner's session
func (s *service) GetSession(ctx context.Context, owner string) (*domain.GameSession, error) {
	session, err := s.repo.GetSession(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: no game session for %s", domain.ErrNotFound, owner)
	}
	return session, nil
}

// DropFruit drops a fruit onto the board
func (s *service) DropFruit(ctx context.Context, owner string) (*domain.GameSession, error) {
	return s.apply(ctx, owner, func(session *domain.GameSession) ([]change, error) {
		level, err := s.engine.Drop(session)
		if err != nil {
			return nil, err
		}
		changes := []change{{eventType: domain.EventTypeFruitDropped, level: level}}
		if session.Phase() == domain.PhaseClaimComplete {
			changes = append(changes, change{eventType: domain.EventTypeClaimReady})
		}
		return changes, nil
	})
}

// MergeFruits merges the board fruits at i and j
func (s *service) MergeFruits(ctx context.Context, owner string, i, j int) (*domain.GameSession, error) {
	return s.apply(ctx, owner, func(session *domain.GameSession) ([]change, error) {
		level, reward, err := s.engine.Merge(session, i, j)
		if err != nil {
			return nil, err
		}
		return []change{{eventType: domain.EventTypeFruitsMerged, level: level, reward: reward}}, nil
	})
}

// StartClaim begins claiming pending seeds
func (s *service) StartClaim(ctx context.Context, owner string) (*domain.GameSession, error) {
	return s.apply(ctx, owner, func(session *domain.GameSession) ([]change, error) {
		if err := s.engine.StartClaim(session); err != nil {
			return nil, err
		}
		return []change{{eventType: domain.EventTypeClaimStarted, amount: session.SeedsPending}}, nil
	})
}

// CompleteHarvest finishes a completed claim
func (s *service) CompleteHarvest(ctx context.Context, owner string) (*domain.GameSession, error) {
	return s.apply(ctx, owner, func(session *domain.GameSession) ([]change, error) {
		moved, err := s.engine.CompleteHarvest(session)
		if err != nil {
			return nil, err
		}
		return []change{{eventType: domain.EventTypeHarvestCompleted, amount: moved}}, nil
	})
}

// TriggerGameOver ends the session and forfeits pending seeds
func (s *service) TriggerGameOver(ctx context.Context, owner string) (*domain.GameSession, error) {
	return s.apply(ctx, owner, func(session *domain.GameSession) ([]change, error) {
		forfeited, err := s.engine.GameOver(session)
		if err != nil {
			return nil, err
		}
		return []change{{eventType: domain.EventTypeGameOver, amount: forfeited}}, nil
	})
}

// ResetGame clears the board from any phase
func (s *service) ResetGame(ctx context.Context, owner string) (*domain.GameSession, error) {
	return s.apply(ctx, owner, func(session *domain.GameSession) ([]change, error) {
		s.engine.Reset(session)
		return []change{{eventType: domain.EventTypeGameReset}}, nil
	})
}

// WithdrawSeeds moves harvested seeds into a new seed bag
func (s *service) WithdrawSeeds(ctx context.Context, owner string, amount int64) (*domain.GameSession, *domain.SeedBag, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := lockSession(ctx, tx, owner)
	if err != nil {
		return nil, nil, err
	}
	withdrawn, err := s.engine.Withdraw(session, amount)
	if err != nil {
		return nil, nil, err
	}
	bag, err := s.ledger.Mint(owner, withdrawn)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.UpdateSession(ctx, session); err != nil {
		return nil, nil, err
	}
	if err := tx.InsertBag(ctx, bag); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.FromContext(ctx).Info("Seeds withdrawn", "owner", owner, "amount", withdrawn, "bag_id", bag.ID)
	s.publish(ctx, session, change{eventType: domain.EventTypeSeedsWithdrawn, amount: withdrawn})
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, ledger.MintedEvent(bag, domain.MintSourceWithdraw, s.clock.NowMillis()))
	}
	return session, bag, nil
}

func lockSession(ctx context.Context, tx repository.GameTx, owner string) (*domain.GameSession, error) {
	session, err := tx.GetSessionForUpdate(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: no game session for %s", domain.ErrNotFound, owner)
	}
	return session, nil
}

// apply runs one transition on owner's locked session and publishes its
// events after commit
func (s *service) apply(ctx context.Context, owner string, transition func(*domain.GameSession) ([]change, error)) (*domain.GameSession, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := lockSession(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	changes, err := transition(session)
	if err != nil {
		return nil, err
	}
	if err := tx.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.publish(ctx, session, changes...)
	return session, nil
}

func (s *service) publish(ctx context.Context, session *domain.GameSession, changes ...change) {
	if s.publisher == nil {
		return
	}
	now := s.clock.NowMillis()
	for _, c := range changes {
		s.publisher.PublishWithRetry(ctx, event.New(c.eventType, session.Owner, domain.GameEventPayload{
			Owner:          session.Owner,
			SessionID:      session.ID,
			Phase:          session.Phase(),
			Score:          session.Score,
			SeedsPending:   session.SeedsPending,
			SeedsHarvested: session.SeedsHarvested,
			DropsRemaining: session.DropsRemaining,
			Level:          c.level,
			Reward:         c.reward,
			Amount:         c.amount,
			Timestamp:      now,
		}))
	}
}
