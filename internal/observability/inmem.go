package observability

import (
	"encoding/json"
	"net/http"
	"sync"
)

type observe struct {
	Kind    string  `json:"kind"`
	Name    string  `json:"name,omitempty"`
	Status  int     `json:"status,omitempty"`
	Count   int     `json:"count,omitempty"`
	Applied int     `json:"applied,omitempty"`
	DurMs   float64 `json:"durMs"`
	OK      bool    `json:"ok"`
}

// InmemSnapshot is what Inmem serves on its metrics route.
type InmemSnapshot struct {
	Polls              int            `json:"polls"`
	FailedPolls        int            `json:"failedPolls"`
	Outcomes           map[string]int `json:"outcomes"`
	CredentialRefresh  int            `json:"credentialRefreshes"`
	RecentObservations []observe      `json:"recent"`
}

// Inmem keeps the last max observations plus running totals. Used when no
// Prometheus backend is configured and in tests.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		polls, failedPolls int
		applied            map[string]int
		refreshes          int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[len(m.last)-m.max:]
	}
}

func (m *Inmem) ObservePoll(fetched, applied int, durMs float64, ok bool) {
	m.push(&observe{Kind: "poll", Count: fetched, Applied: applied, DurMs: durMs, OK: ok})
	m.mu.Lock()
	m.totals.polls++
	if !ok {
		m.totals.failedPolls++
	}
	m.mu.Unlock()
}

func (m *Inmem) ObserveApply(code, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.totals.applied == nil {
		m.totals.applied = make(map[string]int)
	}
	m.totals.applied[outcome]++
}

func (m *Inmem) ObserveRemote(op string, durMs float64, ok bool) {
	m.push(&observe{Kind: "remote", Name: op, DurMs: durMs, OK: ok})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Name: method + " " + route, Status: status, DurMs: durMs})
}

func (m *Inmem) ObserveCredentialRefresh(ok bool) {
	m.push(&observe{Kind: "credential", OK: ok})
	m.mu.Lock()
	m.totals.refreshes++
	m.mu.Unlock()
}

// Outcomes returns a copy of the per-outcome apply counters.
func (m *Inmem) Outcomes() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.totals.applied))
	for k, v := range m.totals.applied {
		out[k] = v
	}
	return out
}

// Snapshot copies the totals and the retained observations, oldest first.
func (m *Inmem) Snapshot() InmemSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := InmemSnapshot{
		Polls:              m.totals.polls,
		FailedPolls:        m.totals.failedPolls,
		Outcomes:           make(map[string]int, len(m.totals.applied)),
		CredentialRefresh:  m.totals.refreshes,
		RecentObservations: make([]observe, 0, len(m.last)),
	}
	for k, v := range m.totals.applied {
		snap.Outcomes[k] = v
	}
	for _, o := range m.last {
		snap.RecentObservations = append(snap.RecentObservations, *o)
	}
	return snap
}

func (m *Inmem) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.Snapshot())
}
