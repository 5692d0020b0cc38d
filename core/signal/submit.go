package signal

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Submitter runs a form submission after a simulated latency.
// A new submission cancels the pending one, and Close cancels it for good,
// so no callback outlives its view.
type Submitter struct {
	mu     sync.Mutex
	clock  clock.Clock
	delay  time.Duration
	timer  *clock.Timer
	gen    uint64
	closed bool
}

func NewSubmitter(clk clock.Clock, delay time.Duration) *Submitter {
	return &Submitter{clock: clk, delay: delay}
}

// Submit schedules fn. It reports false if the submitter is closed.
func (s *Submitter) Submit(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.stop()
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() { s.fire(gen, fn) })
	return true
}

func (s *Submitter) fire(gen uint64, fn func()) {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	fn()
}

func (s *Submitter) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a submission is in flight.
func (s *Submitter) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Submitter) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	s.gen++
}

func (s *Submitter) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	s.gen++
	s.closed = true
}
