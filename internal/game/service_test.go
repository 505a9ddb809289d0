package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/database/memory"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/repository"
	"github.com/younglafire/fruitfarm/internal/testing/eventtest"
	"github.com/younglafire/fruitfarm/internal/utils"
)

type testEnv struct {
	svc    Service
	rec    *eventtest.Recorder
	rng    *utils.ScriptedSource
	clock  *utils.ManualClock
	ledger repository.Ledger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	rec := eventtest.NewRecorder()
	rng := utils.NewScriptedSource()
	clock := utils.NewManualClock(1_700_000_000_000)
	return &testEnv{
		svc:    NewService(memory.NewGameRepository(store), config.DefaultGameConfig().Session, rng, clock, rec),
		rec:    rec,
		rng:    rng,
		clock:  clock,
		ledger: memory.NewLedgerRepository(store),
	}
}

func TestService_StartGameIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.svc.StartGame(ctx, "alice")
	require.NoError(t, err)
	second, err := env.svc.StartGame(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{domain.EventTypeGameStarted}, env.rec.Types())
}

func TestService_MissingSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.svc.GetSession(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.svc.DropFruit(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_FullClaimCycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.StartGame(ctx, "alice")
	require.NoError(t, err)

	// build two level-4 fruits: 3+3 -> 4, 3+3 -> 4
	env.rng.Push(3, 3, 3, 3)
	for i := 0; i < 4; i++ {
		_, err := env.svc.DropFruit(ctx, "alice")
		require.NoError(t, err)
	}
	_, err = env.svc.MergeFruits(ctx, "alice", 0, 1)
	require.NoError(t, err)
	s, err := env.svc.MergeFruits(ctx, "alice", 0, 1)
	require.NoError(t, err)
	require.Equal(t, []domain.FruitLevel{4, 4}, levels(s.Board))
	assert.Equal(t, int64(2), s.SeedsPending)

	s, err = env.svc.MergeFruits(ctx, "alice", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.SeedsPending, "level 5 pays 2 more")
	assert.Equal(t, int64(130), s.Score)

	_, err = env.svc.CompleteHarvest(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	s, err = env.svc.StartClaim(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseClaiming, s.Phase())

	for i := 0; i < 5; i++ {
		s, err = env.svc.DropFruit(ctx, "alice")
		require.NoError(t, err)
	}
	assert.Equal(t, domain.PhaseClaimComplete, s.Phase())

	_, err = env.svc.DropFruit(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrClaimComplete)

	s, err = env.svc.CompleteHarvest(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.SeedsHarvested)
	assert.Equal(t, int64(0), s.SeedsPending)

	_, ok := env.rec.Last(domain.EventTypeClaimReady)
	assert.True(t, ok)
	evt, ok := env.rec.Last(domain.EventTypeHarvestCompleted)
	require.True(t, ok)
	payload, err := event.DecodePayload[domain.GameEventPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(4), payload.Amount)
	assert.Equal(t, domain.PhasePlaying, payload.Phase)
}

func TestService_FailedTransitionWritesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.StartGame(ctx, "alice")
	require.NoError(t, err)
	env.rec.Reset()

	_, err = env.svc.StartClaim(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNothingToClaim)

	s, err := env.svc.GetSession(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlaying, s.Phase())
	assert.Empty(t, env.rec.Events())
}

func TestService_GameOverThenReset(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.StartGame(ctx, "alice")
	require.NoError(t, err)

	s, err := env.svc.TriggerGameOver(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseGameOver, s.Phase())

	_, err = env.svc.TriggerGameOver(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrGameOver)
	_, err = env.svc.DropFruit(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrGameOver)

	s, err = env.svc.ResetGame(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlaying, s.Phase())
}

func TestService_WithdrawSeedsMintsBag(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.StartGame(ctx, "alice")
	require.NoError(t, err)

	_, _, err = env.svc.WithdrawSeeds(ctx, "alice", 0)
	assert.ErrorIs(t, err, domain.ErrNothingToWithdraw)

	// seed harvested balance directly through the repository
	tx, err := memoryGameTx(ctx, env)
	require.NoError(t, err)
	s, err := tx.GetSessionForUpdate(ctx, "alice")
	require.NoError(t, err)
	s.SeedsHarvested = 12
	require.NoError(t, tx.UpdateSession(ctx, s))
	require.NoError(t, tx.Commit(ctx))

	s, bag, err := env.svc.WithdrawSeeds(ctx, "alice", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.SeedsHarvested)
	assert.Equal(t, int64(5), bag.Balance)
	assert.Equal(t, "alice", bag.Owner)

	stored, err := env.ledger.GetBag(ctx, bag.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(5), stored.Balance)

	evt, ok := env.rec.Last(domain.EventTypeSeedsMinted)
	require.True(t, ok)
	payload, err := event.DecodePayload[domain.SeedsMintedPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.MintSourceWithdraw, payload.Source)
	assert.Equal(t, env.clock.NowMillis(), payload.Timestamp)
}

func memoryGameTx(ctx context.Context, env *testEnv) (repository.GameTx, error) {
	return env.svc.(*service).repo.BeginTx(ctx)
}
