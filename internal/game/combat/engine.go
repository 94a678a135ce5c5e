package combat

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
)

// ErrSessionExists is returned by Start when the trainer already has a session.
var ErrSessionExists = errors.New("session already active")

// Engine manages all active battle Sessions, keyed by trainer ID.
// All methods are safe for concurrent use.
type Engine struct {
	deps Deps
	cfg  Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewEngine creates an empty Engine whose sessions share deps and cfg.
//
// Precondition: deps must satisfy NewSession's preconditions.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(deps Deps, cfg Config) *Engine {
	return &Engine{deps: deps, cfg: cfg, sessions: make(map[string]*Session)}
}

// Start opens a session for t. When deps.NewPacer is set each session gets
// its own Pacer so that ending one session does not release another's waits.
//
// Precondition: t must be non-nil with a non-empty ID.
// Postcondition: Returns the new Session or ErrSessionExists.
func (e *Engine) Start(t *trainer.Trainer) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.sessions[t.ID]; exists {
		return nil, fmt.Errorf("trainer %q: %w", t.ID, ErrSessionExists)
	}
	deps := e.deps
	if deps.NewPacer != nil {
		deps.Pacer = deps.NewPacer()
	}
	s := NewSession(t, deps, e.cfg)
	e.sessions[t.ID] = s
	return s, nil
}

// Get returns the session for trainerID.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (e *Engine) Get(trainerID string) (*Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.sessions[trainerID]
	return s, ok
}

// End closes and removes the session for trainerID. Ending an unknown
// trainer is a no-op.
func (e *Engine) End(trainerID string) {
	e.mu.Lock()
	s, ok := e.sessions[trainerID]
	delete(e.sessions, trainerID)
	e.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Count returns the number of active sessions.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}
