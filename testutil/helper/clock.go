package helper

import (
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// FakeClock is a circulation.Clock under test control.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: circulation.ToTimestamp(start)}
}

// Now returns the frozen time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = circulation.ToTimestamp(c.now.Add(d))
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = circulation.ToTimestamp(t)
}

// FixedStart is the instant most tests start from.
func FixedStart() time.Time {
	return time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
}
