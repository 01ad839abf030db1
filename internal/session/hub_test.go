package session

import (
	"testing"
	"time"

	"annochess/internal/catalog"
)

func games() []catalog.Game {
	return []catalog.Game{
		{ID: 3, VariantName: "Scotch", PGN: "1. e4 e5 2. Nf3 Nc6 3. d4"},
		{ID: 8, VariantName: "French", PGN: "1. e4 e6"},
	}
}

func loadedHolder() *catalog.Holder {
	h := &catalog.Holder{}
	h.Store(catalog.New(games()))
	return h
}

func TestSessionPersistenceBeforeSweep(t *testing.T) {
	h := NewHub(loadedHolder(), 24*time.Hour, nil)
	defer h.Close()
	s := h.Get("test")

	// Simulate a session last seen 23 hours ago.
	s.mu.Lock()
	s.lastSeen = time.Now().Add(-23 * time.Hour)
	s.mu.Unlock()

	if n := h.Sweep(time.Now()); n != 0 {
		t.Fatalf("session removed before 24 hours of inactivity")
	}
	if h.Len() != 1 {
		t.Fatalf("session missing after sweep")
	}

	// Simulate a session last seen 25 hours ago.
	s.mu.Lock()
	s.lastSeen = time.Now().Add(-25 * time.Hour)
	s.mu.Unlock()

	if n := h.Sweep(time.Now()); n != 1 {
		t.Fatalf("session not removed after 24 hours of inactivity")
	}
	if h.Len() != 0 {
		t.Fatalf("session still present")
	}
}

func TestGetReturnsSameSession(t *testing.T) {
	h := NewHub(loadedHolder(), 0, nil)
	defer h.Close()
	a := h.Get("abc")
	b := h.Get("abc")
	if a != b {
		t.Fatalf("expected the same session")
	}
	if h.Len() != 1 {
		t.Fatalf("expected one session, got %d", h.Len())
	}
}

func TestNewSessionAutoSelectsDefault(t *testing.T) {
	h := NewHub(loadedHolder(), 0, nil)
	defer h.Close()
	st := h.Get("s1").State()
	g, ok := st.Game()
	if !ok || g.ID != 3 {
		t.Fatalf("expected game 3 selected, got %+v", g)
	}
	if st.Ply() != 0 {
		t.Fatalf("expected ply 0, got %d", st.Ply())
	}
}

func TestAutoSelectWaitsForCatalog(t *testing.T) {
	holder := &catalog.Holder{}
	h := NewHub(holder, 0, nil)
	defer h.Close()
	s := h.Get("early")
	if s.State().Selected() {
		t.Fatalf("nothing should be selected before the catalog resolves")
	}
	holder.Store(catalog.New(games()))
	if g, ok := s.State().Game(); !ok || g.ID != 3 {
		t.Fatalf("expected auto-select once loaded, got %+v", g)
	}
}

func TestFailedCatalogSelectsNothing(t *testing.T) {
	holder := &catalog.Holder{}
	holder.MarkResolved()
	h := NewHub(holder, 0, nil)
	defer h.Close()
	if h.Get("s").State().Selected() {
		t.Fatalf("empty catalog should leave nothing selected")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	h := NewHub(nil, time.Millisecond, nil)
	h.Close()
	h.Close()
}

func TestBackgroundSweepDropsIdleSessions(t *testing.T) {
	h := NewHub(loadedHolder(), 20*time.Millisecond, nil)
	defer h.Close()
	h.Get("gone")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Len() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("idle session was not swept")
}
