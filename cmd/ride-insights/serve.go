package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"ride-insights/internal/auth"
	httphandler "ride-insights/internal/http"
	"ride-insights/internal/http/middleware"
	"ride-insights/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := current.cfg
	reports, err := reportService()
	if err != nil {
		return err
	}

	var protect gin.HandlerFunc
	if cfg.AuthEnabled() {
		protect = middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	} else {
		current.log.Warn().Msg("JWT_ACCESS_SECRET not set, report routes are open")
		protect = middleware.Anonymous(service.System)
	}

	handler := httphandler.NewHandler(reports, current.log)
	router := httphandler.NewRouter(handler, protect, cfg, current.log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		current.log.Info().Str("addr", addr).Msg("starting ride-insights api")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	current.log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
