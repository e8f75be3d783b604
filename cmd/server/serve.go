package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/youruser/popmerge/internal/api"
	"github.com/youruser/popmerge/internal/logging"
	"github.com/youruser/popmerge/internal/merge"
	"github.com/youruser/popmerge/internal/session"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the merge page",
		Example: `  # Serve on the configured address (default 127.0.0.1:8080)
  popmerge serve

  # Reachable from other devices on the network
  popmerge serve --bind 0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			logger, closer, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()
			slog.SetDefault(logger)

			gin.SetMode(gin.ReleaseMode)
			store := session.New(cfg.SessionTTL(), func() *merge.Orchestrator {
				return merge.New(merge.WithLogger(logger))
			})
			srv := api.NewServer(api.Options{
				Sessions:       store,
				MergeInterval:  cfg.MergeInterval(),
				MergeBurst:     cfg.Merge.Burst,
				MaxUploadBytes: cfg.MaxUploadBytes(),
				PublicURL:      cfg.Server.PublicURL,
				Language:       language.Make(cfg.UI.Language),
				Logger:         logger,
			})

			server := &http.Server{
				Addr:              cfg.Server.Bind,
				Handler:           srv.Engine(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("popmerge available", "addr", cfg.Server.Bind, "config", ctx.cfgPath, "config_found", ctx.cfgExists)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("server shutdown failed", "error", err)
					return err
				}
				logger.Info("server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address, overrides server.bind")
	return cmd
}
