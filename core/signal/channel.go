package signal

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Channel bundles the transient signals of one view.
type Channel[T Cloner[T]] struct {
	Notice  *Notice
	Delete  *Confirm
	Edit    *Edit[T]
	Submits *Submitter
}

func NewChannel[T Cloner[T]](clk clock.Clock, noticeTTL, submitDelay time.Duration) *Channel[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Channel[T]{
		Notice:  NewNotice(clk, noticeTTL),
		Delete:  new(Confirm),
		Edit:    new(Edit[T]),
		Submits: NewSubmitter(clk, submitDelay),
	}
}

// Snapshot is the renderable state of a Channel.
type Snapshot[T any] struct {
	Notice        string `json:"notice"`
	PendingDelete string `json:"pending_delete"`
	Editing       *T     `json:"editing"`
	Submitting    bool   `json:"submitting"`
}

func (c *Channel[T]) Snapshot() Snapshot[T] {
	snap := Snapshot[T]{
		Notice:     c.Notice.Text(),
		Submitting: c.Submits.Pending(),
	}
	if id, ok := c.Delete.Pending(); ok {
		snap.PendingDelete = id
	}
	if target, ok := c.Edit.Current(); ok {
		snap.Editing = &target
	}
	return snap
}

// Close tears the channel down: timers are stopped and pending edits & confirmations dropped.
func (c *Channel[T]) Close() {
	c.Notice.Close()
	c.Submits.Close()
	c.Delete.Cancel()
	c.Edit.Cancel()
}
