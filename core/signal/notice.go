// Package signal holds the short-lived presentation state of a view:
// success notices, delete confirmations, edit targets and delayed submissions.
// None of it is part of the entity data.
package signal

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Notice is a success message that clears itself after a fixed TTL.
// Setting a new text restarts the timer (last write wins).
type Notice struct {
	mu     sync.Mutex
	clock  clock.Clock
	ttl    time.Duration
	text   string
	timer  *clock.Timer
	gen    uint64
	closed bool
}

func NewNotice(clk clock.Clock, ttl time.Duration) *Notice {
	return &Notice{clock: clk, ttl: ttl}
}

func (n *Notice) Set(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.stop()
	n.gen++
	gen := n.gen
	n.text = text
	n.timer = n.clock.AfterFunc(n.ttl, func() { n.expire(gen) })
}

// expire ignores timers that fired after being superseded.
func (n *Notice) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen {
		return
	}
	n.text = ""
	n.timer = nil
}

func (n *Notice) stop() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// Text returns the visible message, or "" once cleared.
func (n *Notice) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// Clear dismisses the message right away.
func (n *Notice) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stop()
	n.gen++
	n.text = ""
}

// Close stops the pending timer; later calls to Set are ignored.
func (n *Notice) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stop()
	n.gen++
	n.text = ""
	n.closed = true
}
