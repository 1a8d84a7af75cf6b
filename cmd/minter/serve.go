package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/config"
	"github.com/KirkDiggler/vertical-mint/internal/handlers/api"
	"github.com/KirkDiggler/vertical-mint/internal/logging"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Run the HTTP API: generation, trait and prompt helpers, period administration and /metrics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.LoadOptions{
			ConfigFile: configFile,
			EnvFile:    envFile,
		})
		if err != nil {
			logger.Error("Failed to load config", zap.Error(err))
			return err
		}

		log, _, closeLog, err := logging.New(logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Path:   cfg.Log.Path,
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = log.Sync()
			_ = closeLog()
		}()

		return serve(cmd.Context(), cfg, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app, err := newApp(ctx, cfg, log, true)
	if err != nil {
		log.Error("Failed to build services", zap.Error(err))
		return err
	}
	defer app.Close()

	if err := app.provider.Periods.Load(ctx); err != nil {
		log.Error("Failed to load art periods", zap.Error(err))
		return err
	}

	handler := api.NewHandler(&api.HandlerConfig{
		Generation: app.provider.Generation,
		Periods:    app.provider.Periods,
		Strategies: app.provider.Strategies,
		AdminToken: cfg.AdminToken,
		Logger:     log.Named("http"),
	})
	if cfg.AdminToken == "" {
		log.Warn("ADMIN_TOKEN not set, period administration is disabled")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	onExit := make(chan error, 1)
	go func() {
		log.Info("API server start", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			onExit <- err
		}
		close(onExit)
	}()

	onSignal := make(chan os.Signal, 1)
	signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(onSignal)

	select {
	case sig := <-onSignal:
		log.Info("Exit by signal", zap.String("signal", sig.String()))
	case err, ok := <-onExit:
		if ok {
			log.Error("Exit by error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", zap.Error(err))
		return err
	}
	return nil
}
