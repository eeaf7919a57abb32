package main

import (
	"context"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codescope/internal/index"
	"codescope/internal/provider/ollama"
	"codescope/internal/server"
	"codescope/internal/watcher"
)

// serveCmd returns the "serve" command, which runs the MCP stdio server.
// With --watch the analyzed project root is watched and changed files are
// evicted from the cache automatically.
func serveCmd() *cobra.Command {
	var watchDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analysis tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			mgr := index.NewManager(index.WithLogger(log))
			client := ollama.NewClient(cfg.Ollama.BaseURL,
				ollama.WithRequestsPerMinute(cfg.Ollama.RequestsPerMinute))
			srv := server.New(mgr, cfg, client, log)

			if watchDir == "" {
				return srv.Serve()
			}

			w, err := watcher.New(mgr, log)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.Add(watchDir); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var wg conc.WaitGroup
			wg.Go(func() {
				if err := w.Run(ctx); err != nil && ctx.Err() == nil {
					log.Warn("watcher stopped", zap.Error(err))
				}
			})

			serveErr := srv.Serve()
			cancel()
			wg.Wait()
			return serveErr
		},
	}

	cmd.Flags().StringVar(&watchDir, "watch", "", "directory to watch for changes; edits evict cached analysis")

	return cmd
}
