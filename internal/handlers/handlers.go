package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"annochess/internal/board"
	"annochess/internal/catalog"
	"annochess/internal/logging"
	"annochess/internal/session"
	"annochess/internal/storage"
	"annochess/internal/templates"
	"annochess/internal/viewer"
)

// BoardSize is the pixel size of the SVG board embedded in snapshots.
const BoardSize = 480

// GameLister serves the listing endpoint.
type GameLister interface {
	ListGames(ctx context.Context) ([]catalog.Game, error)
}

// GameGetter serves single-game lookups.
type GameGetter interface {
	GetGame(ctx context.Context, id int64) (catalog.Game, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Hub      *session.Hub
	Listing  GameLister
	Games    GameGetter
	Resolver *viewer.Resolver
	Boards   *board.Cache
	Messages viewer.Renderer
}

// NewHandler creates a new handler instance. repo backs both game endpoints;
// set Listing afterwards to put a cache in front of the listing.
func NewHandler(hub *session.Hub, repo storage.Repository, r *viewer.Resolver, boards *board.Cache) *Handler {
	if r == nil {
		r = viewer.NewResolver(nil)
	}
	h := &Handler{Hub: hub, Resolver: r, Boards: boards, Messages: r.Messages}
	if repo != nil {
		h.Listing = repo
		h.Games = repo
	}
	return h
}

func (h *Handler) message(key, fallback string) string {
	if h.Messages != nil {
		if s, err := h.Messages.Render(key, nil); err == nil {
			return s
		}
	}
	return fallback
}

// snapshot describes st for clients, board markup included.
func (h *Handler) snapshot(st viewer.State) viewer.Snapshot {
	holder := h.Hub.Catalog()
	snap := viewer.NewSnapshot(st, holder.Load(), h.Resolver)
	snap.Loading = !holder.Resolved()
	snap.Board = board.SVG(st.Board(), BoardSize)
	return snap
}

// HandleGames serves GET /api/games/ and GET /api/games/{id}/.
func (h *Handler) HandleGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{"ok": false, "error": "method not allowed"})
		return
	}
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/games"), "/")
	if rest == "" {
		h.listGames(w, r)
		return
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad game id"})
		return
	}
	if h.Games == nil {
		WriteJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "not found"})
		return
	}
	g, err := h.Games.GetGame(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		WriteJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "not found"})
		return
	}
	if err != nil {
		logging.L().Error("get game failed", zap.Int64("game_id", id), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "storage error"})
		return
	}
	WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	games := []catalog.Game{}
	if h.Listing != nil {
		list, err := h.Listing.ListGames(r.Context())
		if err != nil {
			logging.L().Error("list games failed", zap.Error(err))
			WriteJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "storage error"})
			return
		}
		if list != nil {
			games = list
		}
	}
	WriteJSON(w, http.StatusOK, games)
}

// HandleNew opens a new viewer session and redirects to it
func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	http.Redirect(w, r, "/"+id, http.StatusFound)
}

// HandlePage serves the home page or a viewer page
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" || path == "index.html" {
		templates.WriteHomeHTML(w, templates.HomeData{Games: viewer.Options(h.Hub.Catalog().Load())})
		return
	}
	if _, err := uuid.Parse(path); err != nil {
		http.NotFound(w, r)
		return
	}
	snap := h.snapshot(h.Hub.Get(path).State())
	templates.WriteViewerHTML(w, templates.ViewerData{
		SessionID:   path,
		State:       snap,
		Board:       template.HTML(snap.Board),
		Hint:        h.message("hint.keyboard", "Use the arrow keys to step through the moves."),
		Placeholder: h.message("selector.placeholder", "Variants"),
	})
}

// sessionFor resolves the session named by the path after prefix. It writes
// the error response and returns nil when the id is malformed.
func (h *Handler) sessionFor(w http.ResponseWriter, r *http.Request, prefix, suffix string) *session.Session {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, prefix), suffix)
	if _, err := uuid.Parse(id); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad session id"})
		return nil
	}
	return h.Hub.Get(id)
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{"ok": false, "error": "method not allowed"})
		return false
	}
	return true
}

// HandleState returns the session's current snapshot
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(w, r, "/state/", "")
	if s == nil {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": h.snapshot(s.State())})
}

// HandleSelect selects a game by id
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s := h.sessionFor(w, r, "/select/", "")
	if s == nil {
		return
	}
	var body session.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
		return
	}
	st, ok := s.Select(body.ID)
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": "unknown game", "state": h.snapshot(st)})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": h.snapshot(st)})
}

// HandleAdvance steps one ply forward
func (h *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if s := h.sessionFor(w, r, "/advance/", ""); s != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": h.snapshot(s.Advance())})
	}
}

// HandleRetreat steps one ply back
func (h *Handler) HandleRetreat(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if s := h.sessionFor(w, r, "/retreat/", ""); s != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": h.snapshot(s.Retreat())})
	}
}

// HandleGoto jumps to a ply
func (h *Handler) HandleGoto(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s := h.sessionFor(w, r, "/goto/", "")
	if s == nil {
		return
	}
	var body session.GotoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": h.snapshot(s.Goto(body.Ply))})
}

// HandleBoard renders the session's position as PNG
func (h *Handler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(w, r, "/board/", ".png")
	if s == nil {
		return
	}
	if h.Boards == nil {
		http.Error(w, "board images disabled", http.StatusNotFound)
		return
	}
	st := s.State()
	img, err := h.Boards.PNG(r.Context(), st.FEN(), st.Board())
	if err != nil {
		logging.L().Error("render board failed", zap.String("fen", st.FEN()), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// HandleHealth reports liveness and a few counts
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	holder := h.Hub.Catalog()
	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":             true,
		"catalog_loaded": holder.Resolved(),
		"games":          holder.Load().Len(),
		"sessions":       h.Hub.Len(),
	})
}

// ClientIP extracts the client IP from the request
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
