package session

import (
	"sync"
	"time"

	"annochess/internal/catalog"
	"annochess/internal/stats"
	"annochess/internal/viewer"
)

// Hub manages all active viewer sessions.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session

	catalog *catalog.Holder
	idle    time.Duration
	stats   stats.Collector

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Session is one visitor's navigation over the catalog. Its State is only
// replaced by the session's own methods, under mu.
type Session struct {
	ID string

	mu       sync.Mutex
	state    viewer.State
	seeded   bool
	lastSeen time.Time
	catalog  *catalog.Holder
}

// SelectRequest is the body of a select call.
type SelectRequest struct {
	ID int64 `json:"id"`
}

// GotoRequest is the body of a goto call.
type GotoRequest struct {
	Ply int `json:"ply"`
}
