package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// pgTx implements every repository transaction interface over one pgx.Tx.
// The *ForUpdate reads take row locks that serialize same-owner calls.
type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Seed bags

func (t *pgTx) GetBagForUpdate(ctx context.Context, bagID string) (*domain.SeedBag, error) {
	return getBag(ctx, t.tx, bagID, true)
}

func (t *pgTx) InsertBag(ctx context.Context, bag *domain.SeedBag) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO seed_bags (id, owner, balance, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at`,
		bag.ID, bag.Owner, bag.Balance,
	).Scan(&bag.CreatedAt, &bag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: seed bag %s", domain.ErrAlreadyExists, bag.ID)
		}
		return fmt.Errorf("failed to insert seed bag: %w", err)
	}
	return nil
}

func (t *pgTx) UpdateBag(ctx context.Context, bag *domain.SeedBag) error {
	err := t.tx.QueryRow(ctx, `
		UPDATE seed_bags SET balance = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		bag.ID, bag.Balance,
	).Scan(&bag.UpdatedAt)
	if missing, err := noRows(err); missing {
		return fmt.Errorf("%w: seed bag %s", domain.ErrNotFound, bag.ID)
	} else if err != nil {
		return fmt.Errorf("failed to update seed bag: %w", err)
	}
	return nil
}

func (t *pgTx) DeleteBag(ctx context.Context, bagID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM seed_bags WHERE id = $1`, bagID)
	if err != nil {
		return fmt.Errorf("failed to delete seed bag: %w", err)
	}
	return mustAffect(tag, "seed bag", bagID)
}

// Game sessions

func (t *pgTx) GetSessionForUpdate(ctx context.Context, owner string) (*domain.GameSession, error) {
	return getSession(ctx, t.tx, owner, true)
}

func (t *pgTx) InsertSession(ctx context.Context, s *domain.GameSession) error {
	board, err := marshalJSON(s.Board, "board")
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		INSERT INTO game_sessions
			(id, owner, score, seeds_pending, seeds_harvested, board, claim_state, drops_remaining, game_over, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`,
		s.ID, s.Owner, s.Score, s.SeedsPending, s.SeedsHarvested, board, string(s.ClaimState), s.DropsRemaining, s.GameOver,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: game session for %s", domain.ErrAlreadyExists, s.Owner)
		}
		return fmt.Errorf("failed to insert game session: %w", err)
	}
	return nil
}

func (t *pgTx) UpdateSession(ctx context.Context, s *domain.GameSession) error {
	board, err := marshalJSON(s.Board, "board")
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		UPDATE game_sessions
		SET score = $2, seeds_pending = $3, seeds_harvested = $4, board = $5,
			claim_state = $6, drops_remaining = $7, game_over = $8, updated_at = NOW()
		WHERE owner = $1
		RETURNING updated_at`,
		s.Owner, s.Score, s.SeedsPending, s.SeedsHarvested, board, string(s.ClaimState), s.DropsRemaining, s.GameOver,
	).Scan(&s.UpdatedAt)
	if missing, err := noRows(err); missing {
		return fmt.Errorf("%w: game session for %s", domain.ErrNotFound, s.Owner)
	} else if err != nil {
		return fmt.Errorf("failed to update game session: %w", err)
	}
	return nil
}

// Lands

func (t *pgTx) GetLandForUpdate(ctx context.Context, owner string) (*domain.PlayerLand, error) {
	return getLand(ctx, t.tx, owner, true)
}

func (t *pgTx) InsertLand(ctx context.Context, l *domain.PlayerLand) error {
	slots, err := marshalJSON(l.Slots, "slots")
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		INSERT INTO player_lands (id, owner, seed_balance, slots, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`,
		l.ID, l.Owner, l.SeedBalance, slots,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: land for %s", domain.ErrAlreadyExists, l.Owner)
		}
		return fmt.Errorf("failed to insert land: %w", err)
	}
	return nil
}

func (t *pgTx) UpdateLand(ctx context.Context, l *domain.PlayerLand) error {
	slots, err := marshalJSON(l.Slots, "slots")
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		UPDATE player_lands SET seed_balance = $2, slots = $3, updated_at = NOW()
		WHERE owner = $1
		RETURNING updated_at`,
		l.Owner, l.SeedBalance, slots,
	).Scan(&l.UpdatedAt)
	if missing, err := noRows(err); missing {
		return fmt.Errorf("%w: land for %s", domain.ErrNotFound, l.Owner)
	} else if err != nil {
		return fmt.Errorf("failed to update land: %w", err)
	}
	return nil
}

// Inventories

func (t *pgTx) GetInventoryForUpdate(ctx context.Context, owner string) (*domain.FruitInventory, error) {
	return getInventory(ctx, t.tx, owner, true)
}

func (t *pgTx) SaveInventory(ctx context.Context, inv *domain.FruitInventory) error {
	if inv.Fruits == nil {
		inv.Fruits = []domain.HarvestedFruit{}
	}
	fruits, err := json.Marshal(inv.Fruits)
	if err != nil {
		return fmt.Errorf("failed to marshal fruits: %w", err)
	}
	err = t.tx.QueryRow(ctx, `
		INSERT INTO fruit_inventories (id, owner, fruits, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (owner) DO UPDATE SET fruits = EXCLUDED.fruits, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		inv.ID, inv.Owner, fruits,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}
