package combat

import (
	"sync"
	"time"
)

// Pacer inserts the presentation delays between a turn's resolution and its
// follow-up. Delays carry no game logic; a headless session uses NoDelay.
type Pacer interface {
	Wait(d time.Duration)
}

// NoDelay is a Pacer that never waits.
type NoDelay struct{}

// Wait returns immediately.
func (NoDelay) Wait(time.Duration) {}

// RealPacer waits in real time until Stop is called. It is safe for
// concurrent use.
type RealPacer struct {
	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewRealPacer creates a running RealPacer.
//
// Postcondition: Wait blocks for its full duration until Stop is called.
func NewRealPacer() *RealPacer {
	return &RealPacer{stop: make(chan struct{})}
}

// Wait blocks for d, or until Stop is called.
//
// Postcondition: returns immediately for d <= 0 or after Stop.
func (p *RealPacer) Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-p.stop:
	}
}

// Stop releases every current and future Wait. Safe to call multiple times.
func (p *RealPacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.stopped {
		p.stopped = true
		close(p.stop)
	}
}
