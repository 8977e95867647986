package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/server"
	"github.com/jonathan/ats-scorer/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Start an HTTP server exposing the weighted score, streaming score, JD keyphrase and health endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().Int("port", 8000, "Port to listen on")
	return cmd
}

func (a *app) runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.SetupTelemetry(ctx, a.cfg.Telemetry, version)
	if err != nil {
		return err
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			a.log.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	deps, err := a.buildDeps(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			a.log.Warn("closing providers", zap.Error(err))
		}
	}()

	srv := server.New(server.Config{
		Port:            a.cfg.Server.Port,
		ReadTimeout:     a.cfg.Server.ReadTimeout,
		WriteTimeout:    a.cfg.Server.WriteTimeout,
		RequestTimeout:  a.cfg.Server.RequestTimeout,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
		RateLimit:       ratelimit.LoadConfig(a.cfg.RateLimit),
	}, deps.scorer, deps.keyphrases, a.log)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
