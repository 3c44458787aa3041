package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mgtboard/internal/app/server/api"
	"mgtboard/internal/infrastructure/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP сервер",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		repos, err := storage.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("ошибка подключения к хранилищу: %w", err)
		}
		defer func() {
			if err := repos.Close(); err != nil {
				log.Error("failed to close storage", "error", err)
			}
		}()

		srv := &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           api.New(repos, cfg, log),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server started", "address", cfg.Server.RunAddress, "env", cfg.Env,
				"driver", cfg.DB.Driver, "version", cfg.Version)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("ошибка HTTP сервера: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ошибка остановки сервера: %w", err)
		}
		log.Info("server stopped")
		return nil
	},
}
