package service

import (
	"encoding/json"
	"sync"

	"github.com/maxviazov/hockey-match-engine/internal/engine"
)

// liveMatch is one running engine. mu serialises every step and command
// on it; game is nil until loaded and again after an eviction.
type liveMatch struct {
	mu     sync.Mutex
	game   *engine.Game
	seed   uint64
	reward json.RawMessage
}

func (m *liveMatch) evict() {
	m.game = nil
}

// registry maps match ids to live matches. Its own lock only guards the
// map; nothing blocks across matches.
type registry struct {
	mu      sync.Mutex
	matches map[string]*liveMatch
}

func newRegistry() *registry {
	return &registry{matches: make(map[string]*liveMatch)}
}

// entry returns the slot for id, creating an empty one on first use.
func (r *registry) entry(id string) *liveMatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		m = &liveMatch{}
		r.matches[id] = m
	}
	return m
}

// forget drops the slot if it is still m, so a lookup for an unknown id
// does not leave an empty entry behind.
func (r *registry) forget(id string, m *liveMatch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.matches[id] == m {
		delete(r.matches, id)
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches)
}
