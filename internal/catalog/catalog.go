package catalog

import (
	"sync/atomic"
)

// Catalog is an immutable, ordered list of games.
type Catalog struct {
	games []Game
	index map[int64]int
}

// New builds a catalog preserving the order of games. On duplicate ids the
// first game wins lookups.
func New(games []Game) *Catalog {
	c := &Catalog{
		games: append([]Game(nil), games...),
		index: make(map[int64]int, len(games)),
	}
	for i, g := range c.games {
		if _, dup := c.index[g.ID]; !dup {
			c.index[g.ID] = i
		}
	}
	return c
}

// Games returns a copy of the games in listing order.
func (c *Catalog) Games() []Game {
	if c == nil {
		return nil
	}
	return append([]Game(nil), c.games...)
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.games)
}

// Find looks a game up by identifier.
func (c *Catalog) Find(id int64) (Game, bool) {
	if c == nil {
		return Game{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Game{}, false
	}
	return c.games[i], true
}

// Default returns the first game, the one auto-selected after loading.
func (c *Catalog) Default() (Game, bool) {
	if c == nil || len(c.games) == 0 {
		return Game{}, false
	}
	return c.games[0], true
}

// Holder publishes a catalog that is filled in asynchronously. Readers see an
// empty catalog until Store is called.
type Holder struct {
	v      atomic.Pointer[Catalog]
	loaded atomic.Bool
}

// Load returns the current catalog, never nil.
func (h *Holder) Load() *Catalog {
	if c := h.v.Load(); c != nil {
		return c
	}
	return New(nil)
}

// Store publishes c and marks the holder as resolved.
func (h *Holder) Store(c *Catalog) {
	if c == nil {
		c = New(nil)
	}
	h.v.Store(c)
	h.loaded.Store(true)
}

// MarkResolved records that loading finished without publishing games.
func (h *Holder) MarkResolved() { h.loaded.Store(true) }

// Resolved reports whether the startup load has finished, successfully or not.
func (h *Holder) Resolved() bool { return h.loaded.Load() }
