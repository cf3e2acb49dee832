// Package session hosts one calculator engine per client session.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-chi-calculator/internal/model"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrCapacity = errors.New("session capacity reached")
)

// Options configures a Store.
type Options struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxSessions   int
	Logger        *zap.Logger
}

type entry struct {
	mu       sync.Mutex
	engine   *model.Calculator
	lastUsed time.Time
}

// Store maps session ids to engines. Each engine is only ever driven by one
// goroutine at a time through its entry lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	opts     Options
	now      func() time.Time
}

// NewStore returns an empty store.
func NewStore(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*entry),
		opts:     opts,
		now:      time.Now,
	}
}

// Create starts a new session with an engine in its initial state.
func (s *Store) Create() (string, model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		s.evictLocked(s.now())
		if len(s.sessions) >= s.opts.MaxSessions {
			return "", model.State{}, ErrCapacity
		}
	}

	id := uuid.New().String()
	e := &entry{engine: model.New(), lastUsed: s.now()}
	s.sessions[id] = e

	return id, e.engine.Snapshot(), nil
}

// Get returns the state of a session.
func (s *Store) Get(id string) (model.State, error) {
	return s.Apply(id, func(*model.Calculator) {})
}

// Apply runs fn against the session's engine and returns the resulting state.
func (s *Store) Apply(id string, fn func(*model.Calculator)) (model.State, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return model.State{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The entry may have been swept or deleted while we waited for its lock.
	s.mu.RLock()
	current, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || current != e {
		return model.State{}, ErrNotFound
	}

	fn(e.engine)
	e.lastUsed = s.now()

	return e.engine.Snapshot(), nil
}

// Delete ends a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(s.now())
}

// Run sweeps expired sessions until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.opts.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.opts.Logger.Info("expired sessions evicted",
					zap.Int("evicted", n),
					zap.Int("active", s.Len()),
				)
			}
		}
	}
}

func (s *Store) evictLocked(now time.Time) int {
	if s.opts.TTL <= 0 {
		return 0
	}

	evicted := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		idle := now.Sub(e.lastUsed)
		e.mu.Unlock()

		if idle > s.opts.TTL {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Collector returns a gauge reporting the number of live sessions.
func (s *Store) Collector() prometheus.Collector {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "calculator_sessions_active",
			Help: "Number of live calculator sessions.",
		},
		func() float64 { return float64(s.Len()) },
	)
}
