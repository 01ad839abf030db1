package session

import (
	"time"

	"annochess/internal/viewer"
)

// Touch updates the last seen timestamp.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// seedLocked selects the catalog default the first time the session is used
// after the catalog resolved. Must be called with the lock held.
func (s *Session) seedLocked() {
	if s.seeded || !s.catalog.Resolved() {
		return
	}
	s.seeded = true
	if !s.state.Selected() {
		s.state = viewer.Initial(s.catalog.Load())
	}
}

func (s *Session) update(fn func(viewer.State) viewer.State) viewer.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.seedLocked()
	if fn != nil {
		s.state = fn(s.state)
	}
	return s.state
}

// State returns the current navigation state.
func (s *Session) State() viewer.State {
	return s.update(nil)
}

// Select selects the catalog game with the given id. It reports false and
// leaves the state unchanged when the id is unknown.
func (s *Session) Select(id int64) (viewer.State, bool) {
	g, ok := s.catalog.Load().Find(id)
	if !ok {
		return s.State(), false
	}
	return s.update(func(st viewer.State) viewer.State { return st.Select(g) }), true
}

// Advance moves one ply forward.
func (s *Session) Advance() viewer.State {
	return s.update(viewer.State.Advance)
}

// Retreat moves one ply back.
func (s *Session) Retreat() viewer.State {
	return s.update(viewer.State.Retreat)
}

// Goto jumps to ply, clamped to the game's range.
func (s *Session) Goto(ply int) viewer.State {
	return s.update(func(st viewer.State) viewer.State { return st.Goto(ply) })
}
