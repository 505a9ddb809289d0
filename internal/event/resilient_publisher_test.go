package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/testing/leaktest"
)

// flakyBus fails whenever shouldFail returns true for the 1-based call number
type flakyBus struct {
	mu         sync.Mutex
	calls      []Event
	callTimes  []time.Time
	shouldFail func(call int) bool
	delay      time.Duration
}

func (b *flakyBus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, e)
	b.callTimes = append(b.callTimes, time.Now())
	n := len(b.calls)
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.shouldFail != nil && b.shouldFail(n) {
		return errors.New("subscriber unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *flakyBus) Times() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.callTimes...)
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), New("game.started", "alice", nil))

	assert.Equal(t, 1, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(call int) bool { return call == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), New("game.started", "alice", nil))

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 10*time.Millisecond)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), New("land.planted", "bob", map[string]interface{}{"slot": 2}))

	// initial attempt + 3 retries
	assert.Eventually(t, func() bool { return bus.CallCount() == 4 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return len(readDeadLetters(t, path)) == 1 }, time.Second, 10*time.Millisecond)

	entry := readDeadLetters(t, path)[0]
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, Type("land.planted"), entry.Event.Type)
	assert.Equal(t, "bob", entry.Event.Owner())
	assert.Equal(t, "subscriber unavailable", entry.LastError)
	assert.Equal(t, 3, entry.Attempts)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(int) bool { return true }}

	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// no worker: the queue only fills
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), New("seeds.minted", "alice", i))
	}

	assert.Len(t, readDeadLetters(t, path), 3)
	require.NoError(t, rp.Shutdown(context.Background()))
	// draining the two queued entries dead-letters them as well
	assert.Len(t, readDeadLetters(t, path), 5)
}

func TestResilientPublisher_ShutdownDrainsQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(call int) bool { return call <= 3 }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), New("game.over", "alice", i))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	// 3 failed first attempts + one final attempt each
	assert.Equal(t, 6, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, path))

	// second shutdown is a no-op
	assert.NoError(t, rp.Shutdown(context.Background()))
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	bus := &flakyBus{shouldFail: func(call int) bool { return call < 4 }}
	base := 40 * time.Millisecond

	rp, err := NewResilientPublisher(bus, 5, base, "")
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), New("game.reset", "alice", nil))

	require.Eventually(t, func() bool { return bus.CallCount() == 4 }, 2*time.Second, 5*time.Millisecond)

	times := bus.Times()
	assert.GreaterOrEqual(t, times[1].Sub(times[0]), base)
	assert.GreaterOrEqual(t, times[2].Sub(times[1]), 2*base)
	assert.GreaterOrEqual(t, times[3].Sub(times[2]), 4*base)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, "")
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	const goroutines, perGoroutine = 10, 5
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				rp.PublishWithRetry(context.Background(), New("game.fruit_dropped", "alice", id*100+j))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, bus.CallCount())
}

func TestResilientPublisher_ShutdownReleasesRetryWorker(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		bus := &flakyBus{shouldFail: func(int) bool { return true }}
		rp, err := NewResilientPublisher(bus, 3, time.Hour, "")
		require.NoError(t, err)

		rp.PublishWithRetry(context.Background(), New("game.started", "alice", nil))
		require.NoError(t, rp.Shutdown(context.Background()))
	})
}
