package utils

import (
	"sync"
	"time"
)

// Clock supplies a non-decreasing millisecond timestamp
type Clock interface {
	NowMillis() int64
}

// SystemClock reads wall time. It never reports a value below one it already
// returned, so a wall-clock step backwards holds the last reading until real
// time catches up.
type SystemClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSystemClock creates a SystemClock over time.Now
func NewSystemClock() *SystemClock {
	return &SystemClock{now: time.Now}
}

// NowMillis returns the current unix time in milliseconds
func (c *SystemClock) NowMillis() int64 {
	ms := c.now().UnixMilli()
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms > c.last {
		c.last = ms
	}
	return c.last
}

// ManualClock is a clock that only moves when told to
type ManualClock struct {
	mu  sync.Mutex
	now int64
}

// NewManualClock creates a ManualClock starting at the given millisecond
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// NowMillis returns the current manual time
func (c *ManualClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d.Milliseconds()
}

// Set moves the clock to ms if it is not earlier than the current time
func (c *ManualClock) Set(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms > c.now {
		c.now = ms
	}
}
