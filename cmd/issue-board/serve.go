package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Sternrassler/issue-board/pkg/metrics"
	"github.com/Sternrassler/issue-board/pkg/pagination"
	"github.com/Sternrassler/issue-board/pkg/render"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the paged issue board over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = net.JoinHostPort("", a.cfg.Server.Port)
			}

			lister, rdb, closeFn, err := a.newLister(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			srv := newServer(lister, rdb, a.boardTitle(), a.cfg.Pagination, a.logger)
			return srv.run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \":<port>\" from config)")
	return cmd
}

type server struct {
	lister     issueLister
	redis      *redis.Client
	title      string
	pagination pagination.Config
	logger     zerolog.Logger
}

func newServer(l issueLister, rdb *redis.Client, title string, cfg pagination.Config, logger zerolog.Logger) *server {
	return &server{
		lister:     l,
		redis:      rdb,
		title:      title,
		pagination: cfg,
		logger:     logger.With().Str("component", "board-server").Logger(),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.boardHandler)
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", readyHandler(s.redis))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func (s *server) run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting issue board server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info().Msg("Shutting down issue board server")
	return httpServer.Shutdown(shutdownCtx)
}

// boardHandler fetches the issues and serves the page selected by ?page=N (0-based).
func (s *server) boardHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid page %q", raw), http.StatusBadRequest)
			return
		}
		page = n
	}

	body := render.NewTableBody()
	res := s.lister.List(r.Context(), render.HTMLTable{Body: body})

	s.logger.Debug().
		Int("page", page).
		Int("count", res.Count).
		Bool("ready", res.Ready).
		Msg("Serving board")

	board := &render.Board{
		Title:      s.title,
		Body:       body,
		Pagination: s.pagination,
		Href: func(p int) string {
			return "/?page=" + strconv.Itoa(p)
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := board.WritePage(w, page); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write board page")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// readyHandler pings Redis when one is configured.
func readyHandler(rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rdb != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				http.Error(w, "Redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}
}
