package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/database/memory"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/repository"
	"github.com/younglafire/fruitfarm/internal/testing/eventtest"
	"github.com/younglafire/fruitfarm/internal/utils"
)

const testNowMillis int64 = 1_700_000_000_123

func newTestService(t *testing.T) (Service, *eventtest.Recorder) {
	t.Helper()
	rec := eventtest.NewRecorder()
	return NewService(memory.NewLedgerRepository(memory.NewStore()), utils.NewManualClock(testNowMillis), rec), rec
}

// lockRecorder wraps a ledger and records the order bag rows are locked in
type lockRecorder struct {
	repository.Ledger
	mu     sync.Mutex
	locked []string
}

type lockRecorderTx struct {
	repository.LedgerTx
	rec *lockRecorder
}

func (r *lockRecorder) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.Ledger.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &lockRecorderTx{LedgerTx: tx, rec: r}, nil
}

func (tx *lockRecorderTx) GetBagForUpdate(ctx context.Context, bagID string) (*domain.SeedBag, error) {
	tx.rec.mu.Lock()
	tx.rec.locked = append(tx.rec.locked, bagID)
	tx.rec.mu.Unlock()
	return tx.LedgerTx.GetBagForUpdate(ctx, bagID)
}

func (r *lockRecorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.locked
	r.locked = nil
	return out
}

func TestService_MintAndList(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	bag, err := svc.Mint(ctx, "alice", 10)
	require.NoError(t, err)
	_, err = svc.Mint(ctx, "bob", 3)
	require.NoError(t, err)

	bags, err := svc.ListBags(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, bags, 1)
	assert.Equal(t, bag.ID, bags[0].ID)

	evt, ok := rec.Last(domain.EventTypeSeedsMinted)
	require.True(t, ok)
	payload, err := event.DecodePayload[domain.SeedsMintedPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.MintSourceDirect, payload.Source)
	assert.Equal(t, "bob", evt.Owner())
}

func TestService_MintInvalidAmountWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	_, err := svc.Mint(ctx, "alice", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	bags, err := svc.ListBags(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, bags)
	assert.Empty(t, rec.Events())
}

func TestService_Merge(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	a, _ := svc.Mint(ctx, "alice", 7)
	b, _ := svc.Mint(ctx, "alice", 5)

	merged, err := svc.Merge(ctx, "alice", a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), merged.Balance)

	bags, _ := svc.ListBags(ctx, "alice")
	require.Len(t, bags, 1)
	assert.Equal(t, merged.ID, bags[0].ID)

	_, err = svc.GetBag(ctx, "alice", a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	evt, ok := rec.Last(domain.EventTypeSeedsMerged)
	require.True(t, ok)
	payload, err := event.DecodePayload[domain.SeedsMergedPayload](evt.Payload)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, payload.Merged)
}

func TestService_MergeLocksBagsInIDOrder(t *testing.T) {
	ctx := context.Background()
	repo := &lockRecorder{Ledger: memory.NewLedgerRepository(memory.NewStore())}
	svc := NewService(repo, utils.NewManualClock(testNowMillis), eventtest.NewRecorder())

	for _, reversed := range []bool{false, true} {
		a, err := svc.Mint(ctx, "alice", 7)
		require.NoError(t, err)
		b, err := svc.Mint(ctx, "alice", 5)
		require.NoError(t, err)
		lo, hi := a.ID, b.ID
		if hi < lo {
			lo, hi = hi, lo
		}
		repo.take()

		first, second := lo, hi
		if reversed {
			first, second = hi, lo
		}
		merged, err := svc.Merge(ctx, "alice", first, second)
		require.NoError(t, err)
		assert.Equal(t, int64(12), merged.Balance)
		assert.Equal(t, []string{lo, hi}, repo.take(), "reversed=%v", reversed)
	}
}

func TestService_ConcurrentOpposingMerges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for i := 0; i < 20; i++ {
		a, _ := svc.Mint(ctx, "alice", 7)
		b, _ := svc.Mint(ctx, "alice", 5)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for j, pair := range [][2]string{{a.ID, b.ID}, {b.ID, a.ID}} {
			wg.Add(1)
			go func(j int, pair [2]string) {
				defer wg.Done()
				_, errs[j] = svc.Merge(ctx, "alice", pair[0], pair[1])
			}(j, pair)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}
		assert.Equal(t, 1, succeeded)
	}

	bags, err := svc.ListBags(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, bags, 20)
	for _, bag := range bags {
		assert.Equal(t, int64(12), bag.Balance)
	}
}

func TestService_EventsStampedFromClock(t *testing.T) {
	ctx := context.Background()
	clock := utils.NewManualClock(testNowMillis)
	rec := eventtest.NewRecorder()
	svc := NewService(memory.NewLedgerRepository(memory.NewStore()), clock, rec)

	bag, err := svc.Mint(ctx, "alice", 4)
	require.NoError(t, err)
	evt, ok := rec.Last(domain.EventTypeSeedsMinted)
	require.True(t, ok)
	minted, err := event.DecodePayload[domain.SeedsMintedPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, testNowMillis, minted.Timestamp)

	clock.Advance(1500 * time.Millisecond)
	_, err = svc.Consume(ctx, "alice", bag.ID)
	require.NoError(t, err)
	evt, ok = rec.Last(domain.EventTypeSeedsConsumed)
	require.True(t, ok)
	consumed, err := event.DecodePayload[domain.SeedsConsumedPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, testNowMillis+1500, consumed.Timestamp)
}

func TestService_MergeRejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, _ := svc.Mint(ctx, "alice", 7)
	other, _ := svc.Mint(ctx, "bob", 5)

	_, err := svc.Merge(ctx, "alice", a.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Merge(ctx, "alice", a.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = svc.Merge(ctx, "alice", a.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// nothing was destroyed
	got, err := svc.GetBag(ctx, "alice", a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Balance)
}

func TestService_SpendAndAdd(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)
	bag, _ := svc.Mint(ctx, "alice", 10)

	got, err := svc.Spend(ctx, "alice", bag.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Balance)

	_, err = svc.Spend(ctx, "alice", bag.ID, 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientSeeds)

	got, err = svc.Add(ctx, "alice", bag.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Balance)

	_, err = svc.Spend(ctx, "bob", bag.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	assert.Equal(t, []string{
		domain.EventTypeSeedsMinted,
		domain.EventTypeSeedsSpent,
		domain.EventTypeSeedsAdded,
	}, rec.Types())
}

func TestService_Consume(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)
	bag, _ := svc.Mint(ctx, "alice", 8)

	_, err := svc.Consume(ctx, "bob", bag.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	amount, err := svc.Consume(ctx, "alice", bag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), amount)

	_, err = svc.GetBag(ctx, "alice", bag.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, ok := rec.Last(domain.EventTypeSeedsConsumed)
	assert.True(t, ok)
}

func TestService_ConcurrentSpendNeverOverdraws(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	bag, _ := svc.Mint(ctx, "alice", 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Spend(ctx, "alice", bag.ID, 1); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, successes)
	got, err := svc.GetBag(ctx, "alice", bag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Balance)
}
