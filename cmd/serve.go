package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"leadfinder/internal/api"
	"leadfinder/internal/api/handler/v1handler"
	"leadfinder/internal/config"
	"leadfinder/internal/leads"
	"leadfinder/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, runner leads.Runner) func(ctx context.Context) {
	server, err := api.NewServer(ctx, api.Deps{Deps: v1handler.Deps{Runner: runner}}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopTracing := setupTracing(ctx)
			runner, err := newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			stopWebserver := setupServer(ctx, cfg, runner)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopTracing(shutdownCtx)

			return nil
		},
	}

	return cmd
}
