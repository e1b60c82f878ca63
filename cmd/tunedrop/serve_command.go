package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tunedrop/internal/auth"
	"tunedrop/internal/config"
	"tunedrop/internal/extract"
	"tunedrop/internal/server"
	"tunedrop/internal/workspace"
)

// Server timeouts. Write timeout stays unset so long audio streams are
// never cut off by the server itself.
const (
	readTimeout     = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Production && cfg.UsesDefaultSecret() {
		log.Warn().Msg("SECRET_KEY is the development default; set a real secret in production")
	}

	store, err := auth.OpenStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open user store: %w", err)
	}
	defer store.Close()

	srv := server.New(server.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		Extractor: extract.NewService(extract.Options{
			Bitrate:          cfg.Bitrate,
			SocketTimeoutSec: cfg.SocketTimeout,
			Retries:          cfg.Retries,
			CookiesFile:      cfg.CookiesFile,
			ProxyURL:         cfg.ProxyURL,
		}),
		Auth:       auth.NewManager(store, cfg.SecretKey, cfg.Production),
		Workspaces: workspace.NewManager(cfg.WorkspaceBase),
	})

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     srv.Router(),
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
