package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newsletter-api/api"
	"newsletter-api/api/handlers"
	"newsletter-api/pkg/config"
	"newsletter-api/pkg/featureflags"
)

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(os.Stdout, banner)

	apiCfg := api.APIConfig{Logger: a.logger}
	if a.flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiCfg.RateLimit = cfg.Server.RateLimit
		apiCfg.RateBurst = cfg.Server.RateBurst
	}
	if a.recorder != nil {
		apiCfg.MetricsHandler = a.recorder.Handler()
	}
	humaAPI, router := api.NewAPI(apiCfg)

	handlers.NewGenerateHandler(a.newsletter, a.logger).RegisterRoutes(humaAPI)
	handlers.NewTranslateHandler(a.translator, a.logger).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(handlers.HealthConfig{
		SearchConfigured:     a.searchConfigured,
		SummarizerConfigured: a.summarizerConfigured,
		Translator:           a.translator,
		Features:             a.flags,
		Environment:          cfg.Server.Environment,
	}).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", map[string]interface{}{
			"address":     srv.Addr,
			"environment": cfg.Server.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	a.logger.Info("Server stopped", nil)
	return nil
}

const banner = `
    _   __                   __     __  __
   / | / /__ _      _______ / /__  / /_/ /____  _____
  /  |/ / _ \ | /| / / ___// / _ \/ __/ __/ _ \/ ___/
 / /|  /  __/ |/ |/ (__  )/ /  __/ /_/ /_/  __/ /
/_/ |_/\___/|__/|__/____//_/\___/\__/\__/\___/_/
`
