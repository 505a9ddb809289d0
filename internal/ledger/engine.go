package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// Engine provides pure seed bag logic (no DB dependencies)
type Engine struct {
	newID func() string
}

// NewEngine creates a new ledger engine
func NewEngine() *Engine {
	return &Engine{newID: uuid.NewString}
}

// Mint creates a new bag holding amount seeds
func (e *Engine) Mint(owner string, amount int64) (*domain.SeedBag, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: mint %d", domain.ErrInvalidAmount, amount)
	}
	return &domain.SeedBag{ID: e.newID(), Owner: owner, Balance: amount}, nil
}

// Merge combines two bags of the same owner into a new bag. Both inputs are
// left untouched; the caller destroys them.
func (e *Engine) Merge(a, b *domain.SeedBag) (*domain.SeedBag, error) {
	if a.ID == b.ID {
		return nil, fmt.Errorf("%w: cannot merge bag %s with itself", domain.ErrInvalidInput, a.ID)
	}
	if a.Owner != b.Owner {
		return nil, fmt.Errorf("%w: bags %s and %s have different owners", domain.ErrNotOwner, a.ID, b.ID)
	}
	total, err := utils.SafeAddInt64(a.Balance, b.Balance)
	if err != nil {
		return nil, err
	}
	return &domain.SeedBag{ID: e.newID(), Owner: a.Owner, Balance: total}, nil
}

// Spend removes amount seeds from the bag
func (e *Engine) Spend(bag *domain.SeedBag, amount int64) error {
	return Debit(&bag.Balance, amount)
}

// Add puts amount seeds into the bag
func (e *Engine) Add(bag *domain.SeedBag, amount int64) error {
	return Credit(&bag.Balance, amount)
}

// Consume empties the bag and returns what it held. The caller destroys it.
func (e *Engine) Consume(bag *domain.SeedBag) int64 {
	amount := bag.Balance
	bag.Balance = 0
	return amount
}

// Debit subtracts amount from balance. The balance is unchanged on error.
func Debit(balance *int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: debit %d", domain.ErrInvalidAmount, amount)
	}
	if amount > *balance {
		return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientSeeds, amount, *balance)
	}
	*balance -= amount
	return nil
}

// Credit adds amount to balance. The balance is unchanged on error.
func Credit(balance *int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: credit %d", domain.ErrInvalidAmount, amount)
	}
	total, err := utils.SafeAddInt64(*balance, amount)
	if err != nil {
		return err
	}
	*balance = total
	return nil
}
