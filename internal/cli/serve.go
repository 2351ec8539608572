package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/siderealab/orrery/internal/server"
	"github.com/siderealab/orrery/pkg/cache"
	"github.com/siderealab/orrery/pkg/pipeline"
	"github.com/siderealab/orrery/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the orrery HTTP API",
		Long: `Run the HTTP API for chart computation, synastry comparison, layout
resolution and report storage.

By default the server caches computations on disk and keeps reports in
memory. Configure [server] redis and mongo in the config file to share
the cache and persist reports across processes.

Examples:
  orrery serve
  orrery serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+server.DefaultAddr+")")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	cc, err := c.serveCache(ctx)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, nil, logger)
	defer runner.Close()

	st, err := c.serveStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	if addr == "" && c.Config != nil {
		addr = c.Config.Server.Addr
	}

	eph, sid, providerName := c.newProvider()
	srv := server.New(runner, st, eph, sid, logger, server.Config{
		Addr:         addr,
		ProviderName: providerName,
	})
	return srv.ListenAndServe(ctx)
}

// serveCache selects the server-side cache: Redis when configured,
// otherwise the same file cache the CLI commands use.
func (c *CLI) serveCache(ctx context.Context) (cache.Cache, error) {
	if c.Config != nil && c.Config.Server.Redis != "" {
		c.Logger.Info("using redis cache", "addr", c.Config.Server.Redis)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.Server.Redis})
	}
	return c.newCache(false)
}

// serveStore selects the report store: MongoDB when configured,
// otherwise a process-local memory store.
func (c *CLI) serveStore(ctx context.Context) (store.Store, error) {
	if c.Config != nil && c.Config.Server.Mongo != "" {
		c.Logger.Info("using mongodb report store", "uri", c.Config.Server.Mongo)
		st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: c.Config.Server.Mongo})
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return store.NewMemoryStore(), nil
}
