package session

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
	"time"
)

// Registry holds the live search sessions, keyed by the session cookie.
// Sessions are in-process only; the page URL carries the committed
// state, so an evicted session rebuilds from the URL on the next load.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	factory  func(id string) *Session
}

// NewRegistry creates a registry evicting sessions idle longer than ttl.
func NewRegistry(ttl time.Duration, factory func(id string) *Session) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		factory:  factory,
	}
}

// NewID mints a session identifier.
func NewID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Get returns the session for id, if it is still alive.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.Touch()
	}
	return s, ok
}

// GetOrCreate returns the session for id, creating one when missing.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Touch()
		return s
	}
	s := r.factory(id)
	r.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StartSweeper starts a background goroutine that evicts idle sessions.
func (r *Registry) StartSweeper() {
	go func() {
		ticker := time.NewTicker(r.ttl / 2)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().Add(-r.ttl)
			r.mu.Lock()
			for id, s := range r.sessions {
				if s.LastSeen().Before(cutoff) {
					delete(r.sessions, id)
					log.Printf("[session] evicted idle session %s", id)
				}
			}
			r.mu.Unlock()
		}
	}()
}
