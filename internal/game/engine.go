package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// Engine runs the merge game state machine (no DB dependencies)
type Engine struct {
	cfg   config.SessionConfig
	rng   utils.RandomSource
	newID func() string
}

// NewEngine creates a new game engine
func NewEngine(cfg config.SessionConfig, rng utils.RandomSource) *Engine {
	return &Engine{cfg: cfg, rng: rng, newID: uuid.NewString}
}

// NewSession returns an empty session in the Playing phase
func (e *Engine) NewSession(owner string) *domain.GameSession {
	return &domain.GameSession{
		ID:         e.newID(),
		Owner:      owner,
		Board:      []domain.BoardFruit{},
		ClaimState: domain.ClaimStateNone,
	}
}

// Drop appends a random low-level fruit. While claiming it counts down the
// remaining drops and completes the claim at zero.
func (e *Engine) Drop(s *domain.GameSession) (domain.FruitLevel, error) {
	switch s.Phase() {
	case domain.PhaseGameOver:
		return 0, domain.ErrGameOver
	case domain.PhaseClaimComplete:
		return 0, domain.ErrClaimComplete
	}

	level := domain.FruitLevel(e.rng.IntN(e.cfg.DropMinLevel, e.cfg.DropMaxLevel))
	s.Board = append(s.Board, domain.BoardFruit{Level: level})

	if s.Phase() == domain.PhaseClaiming {
		s.DropsRemaining--
		if s.DropsRemaining <= 0 {
			s.DropsRemaining = 0
			s.ClaimState = domain.ClaimStateComplete
		}
	}
	return level, nil
}

// Merge combines the fruits at i and j into one fruit a level higher and
// returns the new level and the seeds it added to pending.
func (e *Engine) Merge(s *domain.GameSession, i, j int) (domain.FruitLevel, int64, error) {
	if s.GameOver {
		return 0, 0, domain.ErrGameOver
	}
	n := len(s.Board)
	if i < 0 || j < 0 || i >= n || j >= n || i == j {
		return 0, 0, fmt.Errorf("%w: %d, %d (board has %d)", domain.ErrInvalidIndex, i, j, n)
	}
	level := s.Board[i].Level
	if s.Board[j].Level != level {
		return 0, 0, fmt.Errorf("%w: %d and %d", domain.ErrMismatchedLevels, level, s.Board[j].Level)
	}

	newLevel := level + 1
	if maxLevel := domain.FruitLevel(e.cfg.MaxLevel); newLevel > maxLevel {
		newLevel = maxLevel
	}
	reward := domain.Reward(newLevel)
	pending, err := utils.SafeAddInt64(s.SeedsPending, reward)
	if err != nil {
		return 0, 0, err
	}
	score, err := utils.SafeAddInt64(s.Score, domain.MergeScore(newLevel))
	if err != nil {
		return 0, 0, err
	}

	hi, lo := i, j
	if lo > hi {
		hi, lo = lo, hi
	}
	board := append([]domain.BoardFruit(nil), s.Board[:hi]...)
	board = append(board, s.Board[hi+1:]...)
	board = append(board[:lo], board[lo+1:]...)
	s.Board = append(board, domain.BoardFruit{Level: newLevel})

	s.SeedsPending = pending
	s.Score = score
	return newLevel, reward, nil
}

// StartClaim begins the claim countdown
func (e *Engine) StartClaim(s *domain.GameSession) error {
	if phase := s.Phase(); phase != domain.PhasePlaying {
		if phase == domain.PhaseGameOver {
			return domain.ErrGameOver
		}
		return fmt.Errorf("%w: cannot start claim while %s", domain.ErrInvalidState, phase)
	}
	if s.SeedsPending <= 0 {
		return domain.ErrNothingToClaim
	}
	s.ClaimState = domain.ClaimStateClaiming
	s.DropsRemaining = e.cfg.DropsPerClaim
	return nil
}

// CompleteHarvest moves pending seeds into harvested and returns how many moved
func (e *Engine) CompleteHarvest(s *domain.GameSession) (int64, error) {
	if phase := s.Phase(); phase != domain.PhaseClaimComplete {
		if phase == domain.PhaseGameOver {
			return 0, domain.ErrGameOver
		}
		return 0, fmt.Errorf("%w: cannot harvest while %s", domain.ErrInvalidState, phase)
	}
	harvested, err := utils.SafeAddInt64(s.SeedsHarvested, s.SeedsPending)
	if err != nil {
		return 0, err
	}
	moved := s.SeedsPending
	s.SeedsHarvested = harvested
	s.SeedsPending = 0
	s.ClaimState = domain.ClaimStateNone
	s.DropsRemaining = 0
	return moved, nil
}

// GameOver ends the session, forfeiting pending seeds. Returns the forfeited amount.
func (e *Engine) GameOver(s *domain.GameSession) (int64, error) {
	if s.GameOver {
		return 0, domain.ErrGameOver
	}
	forfeited := s.SeedsPending
	s.SeedsPending = 0
	s.GameOver = true
	s.ClaimState = domain.ClaimStateNone
	s.DropsRemaining = 0
	return forfeited, nil
}

// Reset returns the session to an empty Playing board. Harvested seeds are kept.
func (e *Engine) Reset(s *domain.GameSession) {
	s.Board = []domain.BoardFruit{}
	s.Score = 0
	s.SeedsPending = 0
	s.ClaimState = domain.ClaimStateNone
	s.DropsRemaining = 0
	s.GameOver = false
}

// Withdraw removes amount harvested seeds, or all of them when amount is 0
func (e *Engine) Withdraw(s *domain.GameSession, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: withdraw %d", domain.ErrInvalidAmount, amount)
	}
	if s.SeedsHarvested == 0 {
		return 0, domain.ErrNothingToWithdraw
	}
	if amount == 0 {
		amount = s.SeedsHarvested
	}
	if amount > s.SeedsHarvested {
		return 0, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientSeeds, amount, s.SeedsHarvested)
	}
	s.SeedsHarvested -= amount
	return amount, nil
}
