// Package ledger records which feed events have already been applied.
package ledger

import "sync"

// Ledger is an append-only set of event ids. It lives as long as the process
// and is never pruned.
type Ledger struct {
	mu      sync.RWMutex
	applied map[string]struct{}
}

func New() *Ledger {
	return &Ledger{applied: make(map[string]struct{})}
}

func (l *Ledger) AlreadyApplied(eventID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.applied[eventID]
	return ok
}

func (l *Ledger) MarkApplied(eventID string) {
	l.mu.Lock()
	l.applied[eventID] = struct{}{}
	l.mu.Unlock()
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.applied)
}
