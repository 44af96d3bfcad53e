package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ariahq/aria/pkg/api"
	"github.com/ariahq/aria/pkg/auth"
	"github.com/ariahq/aria/pkg/config"
	"github.com/ariahq/aria/pkg/filestore"
	"github.com/ariahq/aria/pkg/middleware"
	"github.com/ariahq/aria/pkg/observability"
	"github.com/ariahq/aria/pkg/storage/postgres"
)

// maxUploadBytes bounds wake word sample uploads
const maxUploadBytes = 20 << 20 // 20 MiB

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, os.Stdout)

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer db.Close()

	sessions, err := auth.NewSessionStore(cfg.Redis)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	defer sessions.Client().Close()

	files, err := filestore.New(cfg.FileStore)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize file store")
	}

	authenticator := auth.NewAuthenticator(sessions)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	timeout := cfg.Postgres.StatementTimeout
	accounts := postgres.NewAccountStore(db, timeout)
	wakeWords := postgres.NewWakeWordStore(db, timeout)
	samples := postgres.NewSampleStore(db, timeout)

	server := api.NewServer(logger, metrics)

	gated := server.Subrouter("/v1",
		middleware.MaxBytes(maxUploadBytes),
		middleware.DeviceAuth(authenticator, logger),
	)
	api.NewDeviceHandlers(logger, metrics, accounts, wakeWords, samples, files,
		cfg.Features.StrictWakeWord).RegisterRoutes(gated)

	health := observability.NewHealthChecker(db, sessions.Client())
	if err := serve(cfg, logger, server.Handler(), health, metrics, db); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

// serve runs the API and health listeners until SIGINT/SIGTERM, then drains
// both within the configured shutdown timeout.
func serve(
	cfg *config.Config,
	logger *logrus.Logger,
	handler http.Handler,
	health *observability.HealthChecker,
	metrics *observability.Metrics,
	db *sql.DB,
) error {
	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", health.Liveness)
	healthMux.HandleFunc("/readyz", health.Readiness)
	healthMux.Handle("/metrics", metrics.Handler())
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("device api listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("health server listening")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				metrics.UpdateDBStats(db.Stats())
			}
		}
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return healthServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
