package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jverhoeven/anchormap/internal/api"
	"github.com/jverhoeven/anchormap/pkg/cache"
)

func newServeCmd(cfg *Config) *cobra.Command {
	var (
		addr string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve starts an HTTP server exposing the arrangement pipeline:
POST /api/layout returns positions as JSON, POST /api/render returns a
drawn artifact. Results are cached by map content hash using the
configured cache backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			logger := loggerFromContext(cmd.Context())

			backend, err := openCache(cmd.Context(), cfg.Cache, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			srv := api.New(api.Config{
				Cache:       backend,
				Logger:      logger,
				MinSpacing:  cfg.Render.MinSpacing,
				GroupMargin: cfg.Render.GroupMargin,
				Scale:       cfg.Render.Scale,
				CacheTTL:    ttl,
			})
			return runServer(cmd.Context(), addr, srv.Router(), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&ttl, "cache-ttl", 24*time.Hour, "lifetime of cached responses")

	return cmd
}

// openCache picks the cache backend from the config: Redis wins over the
// on-disk cache, and an empty config disables caching.
func openCache(ctx context.Context, cfg CacheConfig, logger *log.Logger) (cache.Cache, error) {
	switch {
	case cfg.RedisURL != "":
		c, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Debug("using redis cache")
		return c, nil
	case cfg.Dir != "":
		c, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening cache dir: %w", err)
		}
		logger.Debug("using file cache", "dir", cfg.Dir)
		return c, nil
	default:
		logger.Debug("caching disabled")
		return cache.NewNullCache(), nil
	}
}

// runServer serves until the context is cancelled, then shuts down
// gracefully with a short drain window.
func runServer(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
