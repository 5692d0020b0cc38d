package signal

import "sync"

// Confirm tracks the single entity awaiting a delete confirmation.
type Confirm struct {
	mu      sync.Mutex
	id      string
	pending bool
}

// Request marks id as pending, overwriting any previous request.
func (c *Confirm) Request(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id, c.pending = id, true
}

func (c *Confirm) Pending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id, c.pending
}

func (c *Confirm) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id, c.pending = "", false
}

// Take returns the pending id and resets the confirmation.
func (c *Confirm) Take() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.id, c.pending
	c.id, c.pending = "", false
	return id, ok
}
