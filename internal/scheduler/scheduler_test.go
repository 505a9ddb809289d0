package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/younglafire/fruitfarm/internal/worker"
)

func TestScheduler_RunsRepeatedly(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	var runs int32
	sched.Schedule(10*time.Millisecond, worker.JobFunc(func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}), false)

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RunNow(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	var runs int32
	sched.Schedule(time.Hour, worker.JobFunc(func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}), true)

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	sched := New(worker.NewPool(1, 1))
	sched.Stop()
	sched.Stop()
}
