package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"

	"calculator-microservice/internal/config"
	"calculator-microservice/internal/observability"
	"calculator-microservice/internal/server"
)

func main() {

	ctx := context.Background()

	// Config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	logger, closeLogger, err := observability.NewLogger(cfg)
	if err != nil {
		panic(err)
	}

	// Tracing, metrics and log export
	logger, shutdownOps, err := initTelemetry(ctx, cfg, logger)
	if err != nil {
		closeLogger()
		panic(err)
	}

	calc, err := initCalculator(logger)
	if err != nil {
		closeLogger()
		panic(err)
	}

	registry := observability.NewRegistry()
	httpMetrics, err := observability.NewHTTPMetrics(registry)
	if err != nil {
		closeLogger()
		panic(err)
	}

	// Router
	router := server.NewRouter(server.Options{
		Logger:      logger,
		Calculator:  calc,
		HTTPMetrics: httpMetrics,
		Gatherer:    registry,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Arithmetic microservice is listening",
			zap.Int("port", cfg.Port),
			zap.String("env", cfg.Env),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	shutdownOps["http-server"] = srv.Shutdown

	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, shutdownOps)

	exitCode := <-wait
	logger.Info("server stopped", zap.Int("exit_code", exitCode))
	closeLogger()
	os.Exit(exitCode)
}
