package circuitbreaker

import (
	"sort"
	"sync"
)

// Group lazily creates one circuit breaker per key (an upstream host or feed URL)
// sharing the same base configuration. A single failing publisher then cannot trip
// the breaker for every other feed.
type Group struct {
	base     Config
	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

// NewGroup creates an empty group. Breakers are named "<base.Name>:<key>".
func NewGroup(base Config) *Group {
	return &Group{
		base:     base,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Get returns the breaker for key, creating it on first use.
func (g *Group) Get(key string) *CircuitBreaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cb, ok := g.breakers[key]; ok {
		return cb
	}
	cfg := g.base
	cfg.Name = g.base.Name + ":" + key
	cb := New(cfg)
	g.breakers[key] = cb
	return cb
}

// States returns the current state of every breaker created so far, keyed by breaker name.
func (g *Group) States() map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(map[string]string, len(g.breakers))
	for _, cb := range g.breakers {
		out[cb.Name()] = cb.State().String()
	}
	return out
}

// OpenNames returns the sorted names of breakers currently open.
func (g *Group) OpenNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var open []string
	for _, cb := range g.breakers {
		if cb.IsOpen() {
			open = append(open, cb.Name())
		}
	}
	sort.Strings(open)
	return open
}
