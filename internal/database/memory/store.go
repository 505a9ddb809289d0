// Package memory is an in-process repository backend. A transaction holds the
// store mutex for its whole life and applies its staged writes only on commit.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/repository"
)

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

// Store holds every entity in maps keyed by ID or owner address
type Store struct {
	mu          sync.Mutex
	accounts    map[string]*domain.Account
	bags        map[string]*domain.SeedBag
	sessions    map[string]*domain.GameSession
	lands       map[string]*domain.PlayerLand
	inventories map[string]*domain.FruitInventory

	eventsMu    sync.Mutex
	events      []repository.EventLogEntry
	nextEventID int64

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]*domain.Account),
		bags:        make(map[string]*domain.SeedBag),
		sessions:    make(map[string]*domain.GameSession),
		lands:       make(map[string]*domain.PlayerLand),
		inventories: make(map[string]*domain.FruitInventory),
		now:         time.Now,
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) begin(ctx context.Context) (*tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.mu.Lock()
	return &tx{
		s:           s,
		bags:        make(map[string]*domain.SeedBag),
		sessions:    make(map[string]*domain.GameSession),
		lands:       make(map[string]*domain.PlayerLand),
		inventories: make(map[string]*domain.FruitInventory),
	}, nil
}

func cloneBag(b *domain.SeedBag) *domain.SeedBag {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// tx stages writes in its own maps. A nil bag entry marks a deletion.
type tx struct {
	s      *Store
	closed bool

	bags        map[string]*domain.SeedBag
	sessions    map[string]*domain.GameSession
	lands       map[string]*domain.PlayerLand
	inventories map[string]*domain.FruitInventory
}

func (t *tx) Commit(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	defer t.s.mu.Unlock()

	for id, b := range t.bags {
		if b == nil {
			delete(t.s.bags, id)
			continue
		}
		t.s.bags[id] = b
	}
	for owner, sess := range t.sessions {
		t.s.sessions[owner] = sess
	}
	for owner, l := range t.lands {
		t.s.lands[owner] = l
	}
	for owner, inv := range t.inventories {
		t.s.inventories[owner] = inv
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	t.s.mu.Unlock()
	return nil
}

func (t *tx) GetBagForUpdate(ctx context.Context, bagID string) (*domain.SeedBag, error) {
	if b, staged := t.bags[bagID]; staged {
		return cloneBag(b), nil
	}
	return cloneBag(t.s.bags[bagID]), nil
}

func (t *tx) bagExists(id string) bool {
	if b, staged := t.bags[id]; staged {
		return b != nil
	}
	_, ok := t.s.bags[id]
	return ok
}

func (t *tx) InsertBag(ctx context.Context, bag *domain.SeedBag) error {
	if t.bagExists(bag.ID) {
		return fmt.Errorf("%w: seed bag %s", domain.ErrAlreadyExists, bag.ID)
	}
	now := t.s.now()
	bag.CreatedAt, bag.UpdatedAt = now, now
	t.bags[bag.ID] = cloneBag(bag)
	return nil
}

func (t *tx) UpdateBag(ctx context.Context, bag *domain.SeedBag) error {
	if !t.bagExists(bag.ID) {
		return fmt.Errorf("%w: seed bag %s", domain.ErrNotFound, bag.ID)
	}
	bag.UpdatedAt = t.s.now()
	t.bags[bag.ID] = cloneBag(bag)
	return nil
}

func (t *tx) DeleteBag(ctx context.Context, bagID string) error {
	if !t.bagExists(bagID) {
		return fmt.Errorf("%w: seed bag %s", domain.ErrNotFound, bagID)
	}
	t.bags[bagID] = nil
	return nil
}

func (t *tx) GetSessionForUpdate(ctx context.Context, owner string) (*domain.GameSession, error) {
	if sess, staged := t.sessions[owner]; staged {
		return sess.Clone(), nil
	}
	if sess, ok := t.s.sessions[owner]; ok {
		return sess.Clone(), nil
	}
	return nil, nil
}

func (t *tx) InsertSession(ctx context.Context, session *domain.GameSession) error {
	if existing, _ := t.GetSessionForUpdate(ctx, session.Owner); existing != nil {
		return fmt.Errorf("%w: game session for %s", domain.ErrAlreadyExists, session.Owner)
	}
	now := t.s.now()
	session.CreatedAt, session.UpdatedAt = now, now
	t.sessions[session.Owner] = session.Clone()
	return nil
}

func (t *tx) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	if existing, _ := t.GetSessionForUpdate(ctx, session.Owner); existing == nil {
		return fmt.Errorf("%w: game session for %s", domain.ErrNotFound, session.Owner)
	}
	session.UpdatedAt = t.s.now()
	t.sessions[session.Owner] = session.Clone()
	return nil
}

func (t *tx) GetLandForUpdate(ctx context.Context, owner string) (*domain.PlayerLand, error) {
	if l, staged := t.lands[owner]; staged {
		return l.Clone(), nil
	}
	if l, ok := t.s.lands[owner]; ok {
		return l.Clone(), nil
	}
	return nil, nil
}

func (t *tx) InsertLand(ctx context.Context, land *domain.PlayerLand) error {
	if existing, _ := t.GetLandForUpdate(ctx, land.Owner); existing != nil {
		return fmt.Errorf("%w: land for %s", domain.ErrAlreadyExists, land.Owner)
	}
	now := t.s.now()
	land.CreatedAt, land.UpdatedAt = now, now
	t.lands[land.Owner] = land.Clone()
	return nil
}

func (t *tx) UpdateLand(ctx context.Context, land *domain.PlayerLand) error {
	if existing, _ := t.GetLandForUpdate(ctx, land.Owner); existing == nil {
		return fmt.Errorf("%w: land for %s", domain.ErrNotFound, land.Owner)
	}
	land.UpdatedAt = t.s.now()
	t.lands[land.Owner] = land.Clone()
	return nil
}

func (t *tx) GetInventoryForUpdate(ctx context.Context, owner string) (*domain.FruitInventory, error) {
	if inv, staged := t.inventories[owner]; staged {
		return inv.Clone(), nil
	}
	if inv, ok := t.s.inventories[owner]; ok {
		return inv.Clone(), nil
	}
	return nil, nil
}

func (t *tx) SaveInventory(ctx context.Context, inv *domain.FruitInventory) error {
	now := t.s.now()
	if existing, _ := t.GetInventoryForUpdate(ctx, inv.Owner); existing == nil {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now
	t.inventories[inv.Owner] = inv.Clone()
	return nil
}
