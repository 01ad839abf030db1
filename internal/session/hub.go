// Package session keeps per-visitor navigation state for the web viewer.
package session

import (
	"time"

	"annochess/internal/catalog"
	"annochess/internal/logging"
	"annochess/internal/stats"
)

// DefaultIdle is how long a session may go unused before the sweep drops it.
const DefaultIdle = 24 * time.Hour

const sweepEvery = 5 * time.Minute

// NewHub creates a session hub with a cleanup goroutine. Sessions not seen for
// idle are dropped; Close stops the goroutine.
func NewHub(c *catalog.Holder, idle time.Duration, coll stats.Collector) *Hub {
	if c == nil {
		c = &catalog.Holder{}
	}
	if idle <= 0 {
		idle = DefaultIdle
	}
	h := &Hub{
		sessions: make(map[string]*Session),
		catalog:  c,
		idle:     idle,
		stats:    stats.OrNoop(coll),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	every := sweepEvery
	if idle < every {
		every = idle
	}
	go h.sweepLoop(every)
	return h
}

func (h *Hub) sweepLoop(every time.Duration) {
	defer close(h.done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-h.stop:
			return
		case now := <-t.C:
			h.Sweep(now)
		}
	}
}

// Sweep drops sessions idle for longer than the hub's idle period as of now
// and returns how many were dropped.
func (h *Hub) Sweep(now time.Time) int {
	h.mu.Lock()
	dropped := 0
	for id, s := range h.sessions {
		if now.Sub(s.LastSeen()) > h.idle {
			delete(h.sessions, id)
			dropped++
		}
	}
	n := len(h.sessions)
	h.mu.Unlock()

	if dropped > 0 {
		logging.Debugf("swept %d idle sessions, %d left", dropped, n)
		h.stats.IncCounter(stats.MetricSessionsExpired, int64(dropped))
	}
	h.stats.SetGauge(stats.MetricSessions, int64(n))
	return dropped
}

// Get retrieves an existing session or creates a new one.
func (h *Hub) Get(id string) *Session {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if !ok {
		s = &Session{ID: id, catalog: h.catalog, lastSeen: time.Now()}
		h.sessions[id] = s
	}
	n := len(h.sessions)
	h.mu.Unlock()

	if !ok {
		logging.Debugf("session %s created", id)
		h.stats.SetGauge(stats.MetricSessions, int64(n))
	}
	s.Touch()
	return s
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Catalog returns the catalog the hub's sessions navigate.
func (h *Hub) Catalog() *catalog.Holder {
	return h.catalog
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (h *Hub) Close() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}
