package server

import (
	"context"
	"sync"
	"time"

	"github.com/kubbkoz/MTSTORE-Next/pkg/query"
)

const DefaultSessionTtl = 30 * time.Minute

type browseSession struct {
	state   query.State
	touched time.Time
}

// SessionStore keeps the browse state of every shopper in memory.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*browseSession
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTtl
	}
	return &SessionStore{ttl: ttl, sessions: make(map[string]*browseSession), now: time.Now}
}

// Get returns the state of a session, new sessions start idle.
func (s *SessionStore) Get(id string) query.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok && s.now().Sub(sess.touched) < s.ttl {
		sess.touched = s.now()
		return sess.state
	}
	return query.NewState()
}

func (s *SessionStore) Put(id string, state query.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &browseSession{state: state, touched: s.now()}
	activeSessions.Set(float64(len(s.sessions)))
}

// Update applies fn to the session state while holding the lock, so
// concurrent actions of one shopper are applied one after the other.
func (s *SessionStore) Update(id string, fn func(query.State) query.State) query.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := query.NewState()
	if sess, ok := s.sessions[id]; ok && s.now().Sub(sess.touched) < s.ttl {
		state = sess.state
	}
	next := fn(state)
	s.sessions[id] = &browseSession{state: next, touched: s.now()}
	activeSessions.Set(float64(len(s.sessions)))
	return next
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.touched) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	activeSessions.Set(float64(len(s.sessions)))
	return removed
}

func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
