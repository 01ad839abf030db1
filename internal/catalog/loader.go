package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"annochess/internal/logging"
	"annochess/internal/stats"
)

// DefaultPath is the listing endpoint path served by annochess itself.
const DefaultPath = "/api/games/"

// ErrStatus is returned when the listing endpoint answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status from games endpoint")

// Source yields the list of available games.
type Source interface {
	FetchGames(ctx context.Context) ([]Game, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Game, error)

// FetchGames calls f.
func (f SourceFunc) FetchGames(ctx context.Context) ([]Game, error) { return f(ctx) }

// HTTPSource fetches games from a listing endpoint.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns a source for raw. A bare base URL such as
// http://host:8080 gets DefaultPath appended.
func NewHTTPSource(raw string, timeout time.Duration) *HTTPSource {
	u := strings.TrimSpace(raw)
	if parsed, err := url.Parse(u); err == nil && parsed.Host != "" && (parsed.Path == "" || parsed.Path == "/") {
		parsed.Path = DefaultPath
		u = parsed.String()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{URL: u, Client: &http.Client{Timeout: timeout}}
}

// FetchGames performs the GET and decodes the JSON array of games.
func (s *HTTPSource) FetchGames(ctx context.Context) ([]Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var games []Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	return games, nil
}

// Loader fetches the catalog exactly once and publishes it to Holder.
type Loader struct {
	Source Source
	Holder *Holder
	Stats  stats.Collector
}

// NewLoader returns a loader publishing into h (a fresh Holder when nil).
func NewLoader(src Source, h *Holder) *Loader {
	if h == nil {
		h = &Holder{}
	}
	return &Loader{Source: src, Holder: h}
}

// Load fetches the games. A failure is logged and leaves the catalog empty;
// there is no retry.
func (l *Loader) Load(ctx context.Context) *Catalog {
	games, err := l.Source.FetchGames(ctx)
	if err != nil {
		logging.L().Error("fetch games failed", zap.Error(err))
		l.Holder.MarkResolved()
		return l.Holder.Load()
	}
	c := New(games)
	l.Holder.Store(c)
	stats.OrNoop(l.Stats).SetGauge(stats.MetricCatalogGames, int64(c.Len()))
	logging.L().Info("catalog loaded", zap.Int("games", c.Len()))
	return c
}
