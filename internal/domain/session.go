package domain

import "time"

// ClaimState tracks the two-phase seed claim
type ClaimState string

const (
	ClaimStateNone     ClaimState = "not_claiming"
	ClaimStateClaiming ClaimState = "claiming"
	ClaimStateComplete ClaimState = "claim_complete"
)

// SessionPhase is the derived state of a game session
type SessionPhase string

const (
	PhasePlaying       SessionPhase = "playing"
	PhaseClaiming      SessionPhase = "claiming"
	PhaseClaimComplete SessionPhase = "claim_complete"
	PhaseGameOver      SessionPhase = "game_over"
)

// BoardFruit is a fruit currently on the game board
type BoardFruit struct {
	Level FruitLevel `json:"level"`
}

// GameSession is a single player's merge game
type GameSession struct {
	ID             string       `json:"id"`
	Owner          string       `json:"owner"`
	Score          int64        `json:"score"`
	SeedsPending   int64        `json:"seeds_pending"`
	SeedsHarvested int64        `json:"seeds_harvested"`
	Board          []BoardFruit `json:"board"`
	ClaimState     ClaimState   `json:"claim_state"`
	DropsRemaining int          `json:"drops_remaining"`
	GameOver       bool         `json:"game_over"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Phase derives the state machine phase from the stored flags
func (s *GameSession) Phase() SessionPhase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.ClaimState == ClaimStateComplete:
		return PhaseClaimComplete
	case s.ClaimState == ClaimStateClaiming:
		return PhaseClaiming
	default:
		return PhasePlaying
	}
}

// Clone returns a deep copy
func (s *GameSession) Clone() *GameSession {
	c := *s
	c.Board = append([]BoardFruit(nil), s.Board...)
	return &c
}

// GameEventPayload is the common event payload for game.* events
type GameEventPayload struct {
	Owner          string       `json:"owner"`
	SessionID      string       `json:"session_id"`
	Phase          SessionPhase `json:"phase"`
	Score          int64        `json:"score"`
	SeedsPending   int64        `json:"seeds_pending"`
	SeedsHarvested int64        `json:"seeds_harvested"`
	DropsRemaining int          `json:"drops_remaining"`
	Level          FruitLevel   `json:"level,omitempty"`
	Reward         int64        `json:"reward,omitempty"`
	Amount         int64        `json:"amount,omitempty"`
	Timestamp      int64        `json:"timestamp"`
}
