package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"annochess/internal/board"
	"annochess/internal/cache"
	"annochess/internal/catalog"
	"annochess/internal/config"
	"annochess/internal/handlers"
	"annochess/internal/logging"
	"annochess/internal/session"
	"annochess/internal/stats"
	promstats "annochess/internal/stats/prometheus"
)

func addServe(topLevel *cobra.Command, opts *rootOptions) {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web viewer and the games API.",
		Example: `
annochess serve --addr :8080
ANNOCHESS_DATABASE_URL=postgres://... annochess serve
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ANNOCHESS_ADDR)")
	topLevel.AddCommand(cmd)
}

func runServe(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	coll := promstats.New(reg)

	var listing handlers.GameLister = repo
	if cfg.RedisURL != "" {
		rc, err := cache.Open(ctx, cfg.RedisURL, cfg.CatalogCacheTTL, coll)
		if err != nil {
			return err
		}
		defer rc.Close()
		listing = rc.Through(repo)
	}

	// Viewers read the catalog from the configured listing endpoint, or
	// straight from the local listing when none is set.
	var src catalog.Source = catalog.SourceFunc(listing.ListGames)
	if cfg.CatalogURL != "" {
		src = catalog.NewHTTPSource(cfg.CatalogURL, cfg.FetchTimeout)
	}
	holder := &catalog.Holder{}
	loader := catalog.NewLoader(src, holder)
	loader.Stats = coll

	hub := session.NewHub(holder, cfg.SessionIdle, coll)
	defer hub.Close()

	boards, err := board.NewCache(board.NewRenderer(cfg.SquareSize), cfg.BoardCacheSize, coll)
	if err != nil {
		return err
	}

	h := handlers.NewHandler(hub, repo, resolver, boards)
	h.Listing = listing

	mux := http.NewServeMux()
	mux.HandleFunc("/new", h.HandleNew)
	mux.HandleFunc("/api/games/", h.HandleGames)
	mux.HandleFunc("/state/", h.HandleState)
	mux.HandleFunc("/select/", h.HandleSelect)
	mux.HandleFunc("/advance/", h.HandleAdvance)
	mux.HandleFunc("/retreat/", h.HandleRetreat)
	mux.HandleFunc("/goto/", h.HandleGoto)
	mux.HandleFunc("/board/", h.HandleBoard)
	mux.HandleFunc("/healthz", h.HandleHealth)
	mux.Handle("/metrics", promstats.Handler(reg))
	mux.HandleFunc("/", h.HandlePage)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.RequestID(handlers.AccessLog(stats.Middleware(coll, mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	logging.L().Info("annochess listening", zap.String("addr", ln.Addr().String()), zap.String("commit", commit))

	// The catalog may be served by this very process, so load it only once
	// the listener is up.
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
		loader.Load(fetchCtx)
	}()

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
