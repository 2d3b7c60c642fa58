package model

import (
	"sync"
	"time"
)

// Clock measures how long a game has been played. It can be paused and reset.
type Clock struct {
	mu          sync.Mutex
	elapsed     time.Duration
	lastStarted time.Time // when the clock was last started
	isRunning   bool
	now         func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockWithTimeSource is NewClock with a custom time source.
func NewClockWithTimeSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.elapsed += c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

// Reset zeroes the clock and leaves it stopped.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.elapsed = 0
	c.isRunning = false
}

func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.elapsed + c.now().Sub(c.lastStarted)
	}
	return c.elapsed
}
