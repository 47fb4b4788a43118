package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chartkit/chartkit/internal/server"
	"github.com/chartkit/chartkit/pkg/cache"
	"github.com/chartkit/chartkit/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string        // listen address
	storeKind  string        // "memory" or "mongo"
	mongoURI   string        // MongoDB connection string
	mongoDB    string        // MongoDB database name
	cacheKind  string        // "none", "file" or "redis"
	redisAddr  string        // Redis address or URL for the artifact cache
	cacheDir   string        // file cache directory, empty for the user cache dir
	cacheScope string        // cache key prefix for shared backends
	ttl        time.Duration // artifact cache TTL
}

// newServeCmd creates the serve command running the rendering HTTP server.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		storeKind: "memory",
		mongoDB:   appName,
		cacheKind: "file",
		ttl:       server.DefaultArtifactTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart rendering HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", opts.storeKind, "chart store backend (memory|mongo)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string for --store mongo")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", opts.cacheKind, "artifact cache backend (none|file|redis)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for --cache redis")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "file cache directory (default: user cache dir)")
	cmd.Flags().StringVar(&opts.cacheScope, "cache-scope", "", "cache key prefix, for backends shared between deployments")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", opts.ttl, "artifact cache TTL")

	return cmd
}

// runServe wires the store and cache backends and serves until ctx is done.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	st, err := buildStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	c, err := buildCache(ctx, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	srvOpts := []server.Option{
		server.WithCache(c),
		server.WithLogger(logger),
		server.WithArtifactTTL(opts.ttl),
	}
	if opts.cacheScope != "" {
		srvOpts = append(srvOpts, server.WithKeyer(cache.NewScopedKeyer(nil, opts.cacheScope+":")))
	}
	srv := server.New(st, srvOpts...)

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// buildStore selects the chart store backend.
func buildStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	logger := loggerFromContext(ctx)
	switch opts.storeKind {
	case "memory":
		logger.Warn("Using in-memory store, charts are lost on restart")
		return store.NewMemory(), nil
	case "mongo":
		if opts.mongoURI == "" {
			return nil, fmt.Errorf("--store mongo requires --mongo-uri")
		}
		logger.Infof("Using MongoDB store (database %s)", opts.mongoDB)
		return store.NewMongo(ctx, opts.mongoURI, opts.mongoDB)
	default:
		return nil, fmt.Errorf("unknown store backend %q (memory|mongo)", opts.storeKind)
	}
}

// buildCache selects the artifact cache backend.
func buildCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	logger := loggerFromContext(ctx)
	switch opts.cacheKind {
	case "none":
		logger.Debug("Artifact caching disabled")
		return cache.NewNullCache(), nil
	case "redis":
		if opts.redisAddr == "" {
			return nil, fmt.Errorf("--cache redis requires --redis-addr")
		}
		logger.Info("Using Redis artifact cache")
		return cache.NewRedisCache(ctx, redisCacheURL(opts.redisAddr))
	case "file":
		dir := opts.cacheDir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		logger.Debugf("Using file artifact cache at %s", dir)
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (none|file|redis)", opts.cacheKind)
	}
}

// redisCacheURL accepts either a full redis:// URL or a bare host:port.
func redisCacheURL(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	return "redis://" + addr
}
