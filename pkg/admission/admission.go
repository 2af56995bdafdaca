// Package admission bounds the number of batch-sign calls a signer process
// handles at once. It is a load-shedding gate, not a queue: callers over the
// limit are rejected immediately and are expected to retry later.
package admission

import (
	"errors"
	"sync"
)

// DefaultMaxOngoingRequests is the admission cap used when no explicit limit
// is configured.
const DefaultMaxOngoingRequests = 10

// ErrPoolFull is returned by Enter when the cap is reached.
var ErrPoolFull = errors.New("request pool is full")

// Controller tracks in-flight batch-sign calls behind a mutex held only for
// the increment or decrement itself, never across a request.
type Controller struct {
	mu      sync.Mutex
	ongoing uint64
	max     uint64
}

// NewController creates a Controller with the given cap. A zero cap selects
// DefaultMaxOngoingRequests.
func NewController(max uint64) *Controller {
	if max == 0 {
		max = DefaultMaxOngoingRequests
	}
	return &Controller{max: max}
}

// Enter admits a new call, failing with ErrPoolFull once the ongoing count
// exceeds the cap. Every successful Enter must be paired with exactly one
// Exit on all return paths; callers defer the Exit immediately.
func (c *Controller) Enter() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ongoing > c.max {
		return ErrPoolFull
	}
	c.ongoing++
	return nil
}

// Exit releases a previously admitted call.
func (c *Controller) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ongoing == 0 {
		// Unpaired Exit is a programming error; refusing to underflow keeps
		// the gate usable.
		return
	}
	c.ongoing--
}

// Ongoing reports the current number of admitted calls.
func (c *Controller) Ongoing() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ongoing
}
