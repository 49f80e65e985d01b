package memory

import (
	"context"
	"sync"
	"time"
)

// SubmitGuard is the in-process counterpart of the Redis submit guard.
type SubmitGuard struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

func NewSubmitGuard(window time.Duration) *SubmitGuard {
	return &SubmitGuard{window: window, seen: make(map[string]time.Time), now: time.Now}
}

func (g *SubmitGuard) First(_ context.Context, sessionID, form, fingerprint string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := sessionID + ":" + form + ":" + fingerprint
	now := g.now()
	if at, ok := g.seen[key]; ok && now.Sub(at) < g.window {
		return false, nil
	}
	g.seen[key] = now
	return true, nil
}
