package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/ariahq/aria/pkg/api"
	"github.com/ariahq/aria/pkg/config"
	"github.com/ariahq/aria/pkg/observability"
	"github.com/ariahq/aria/pkg/sso"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, os.Stdout)

	// Provider discovery happens once at startup; a misconfigured provider
	// fails fast instead of surfacing per request.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
	providers, err := sso.NewRegistry(ctx, cfg.SSO)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("failed to configure sso providers")
	}
	logger.WithField("providers", providers.Names()).Info("sso providers configured")

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	server := api.NewServer(logger, metrics)
	api.NewSSOHandlers(logger, providers).RegisterRoutes(server.Subrouter("/api"))

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	health := observability.NewHealthChecker(nil, nil)
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", health.Liveness)
	healthMux.HandleFunc("/readyz", health.Readiness)
	healthMux.Handle("/metrics", metrics.Handler())
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, runCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("sso server listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-runCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return healthServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
