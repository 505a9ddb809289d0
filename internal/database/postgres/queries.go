package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/younglafire/fruitfarm/internal/domain"
)

func lockClause(forUpdate bool) string {
	if forUpdate {
		return " FOR UPDATE"
	}
	return ""
}

func getBag(ctx context.Context, q querier, bagID string, forUpdate bool) (*domain.SeedBag, error) {
	var b domain.SeedBag
	err := q.QueryRow(ctx, `
		SELECT id::text, owner, balance, created_at, updated_at
		FROM seed_bags WHERE id::text = $1`+lockClause(forUpdate),
		bagID,
	).Scan(&b.ID, &b.Owner, &b.Balance, &b.CreatedAt, &b.UpdatedAt)
	if missing, err := noRows(err); missing {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get seed bag: %w", err)
	}
	return &b, nil
}

func getSession(ctx context.Context, q querier, owner string, forUpdate bool) (*domain.GameSession, error) {
	var (
		s          domain.GameSession
		board      []byte
		claimState string
	)
	err := q.QueryRow(ctx, `
		SELECT id::text, owner, score, seeds_pending, seeds_harvested, board,
			claim_state, drops_remaining, game_over, created_at, updated_at
		FROM game_sessions WHERE owner = $1`+lockClause(forUpdate),
		owner,
	).Scan(&s.ID, &s.Owner, &s.Score, &s.SeedsPending, &s.SeedsHarvested, &board,
		&claimState, &s.DropsRemaining, &s.GameOver, &s.CreatedAt, &s.UpdatedAt)
	if missing, err := noRows(err); missing {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}
	s.ClaimState = domain.ClaimState(claimState)
	if err := json.Unmarshal(board, &s.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	if s.Board == nil {
		s.Board = []domain.BoardFruit{}
	}
	return &s, nil
}

func getLand(ctx context.Context, q querier, owner string, forUpdate bool) (*domain.PlayerLand, error) {
	var (
		l     domain.PlayerLand
		slots []byte
	)
	err := q.QueryRow(ctx, `
		SELECT id::text, owner, seed_balance, slots, created_at, updated_at
		FROM player_lands WHERE owner = $1`+lockClause(forUpdate),
		owner,
	).Scan(&l.ID, &l.Owner, &l.SeedBalance, &slots, &l.CreatedAt, &l.UpdatedAt)
	if missing, err := noRows(err); missing {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get land: %w", err)
	}
	if err := json.Unmarshal(slots, &l.Slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slots: %w", err)
	}
	return &l, nil
}

func getInventory(ctx context.Context, q querier, owner string, forUpdate bool) (*domain.FruitInventory, error) {
	var (
		inv    domain.FruitInventory
		fruits []byte
	)
	err := q.QueryRow(ctx, `
		SELECT id::text, owner, fruits, created_at, updated_at
		FROM fruit_inventories WHERE owner = $1`+lockClause(forUpdate),
		owner,
	).Scan(&inv.ID, &inv.Owner, &fruits, &inv.CreatedAt, &inv.UpdatedAt)
	if missing, err := noRows(err); missing {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	if err := json.Unmarshal(fruits, &inv.Fruits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fruits: %w", err)
	}
	if inv.Fruits == nil {
		inv.Fruits = []domain.HarvestedFruit{}
	}
	return &inv, nil
}
