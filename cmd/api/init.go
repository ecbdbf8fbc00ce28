package main

import (
	"context"
	"fmt"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.opentelemetry.io/otel"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"calculator-microservice/internal/calculator"
	"calculator-microservice/internal/config"
	"calculator-microservice/internal/observability"
)

// initTelemetry starts the OTLP trace, metric and log exporters when an
// endpoint is configured. Without one the global OTel providers stay no-op.
// The returned operations flush the exporters on shutdown.
func initTelemetry(ctx context.Context, cfg config.Config, logger *zap.Logger) (*zap.Logger, map[string]gfshutdown.Operation, error) {
	if !cfg.TelemetryEnabled() {
		return logger, map[string]gfshutdown.Operation{}, nil
	}

	ops, err := startAll(ctx, []startStep{
		{name: "tracing", start: func(ctx context.Context) (gfshutdown.Operation, error) {
			return observability.InitTracing(ctx, cfg.ServiceName)
		}},
		{name: "metrics", start: func(ctx context.Context) (gfshutdown.Operation, error) {
			return observability.InitMetrics(ctx, cfg.ServiceName)
		}},
		{name: "logging", start: func(ctx context.Context) (gfshutdown.Operation, error) {
			teed, shutdown, err := observability.WithOTelLogging(ctx, logger, cfg.ServiceName)
			if err != nil {
				return nil, err
			}
			logger = teed
			return shutdown, nil
		}},
	})
	if err != nil {
		return nil, nil, err
	}

	return logger, ops, nil
}

type startStep struct {
	name  string
	start func(context.Context) (gfshutdown.Operation, error)
}

// startAll runs steps in order. When one fails, the providers already
// started are shut down before the error is returned.
func startAll(ctx context.Context, steps []startStep) (map[string]gfshutdown.Operation, error) {
	ops := make(map[string]gfshutdown.Operation, len(steps))

	for _, step := range steps {
		shutdown, err := step.start(ctx)
		if err != nil {
			err = fmt.Errorf("init %s: %w", step.name, err)
			return nil, multierr.Append(err, shutdownAll(ctx, ops))
		}
		ops[step.name] = shutdown
	}

	return ops, nil
}

func shutdownAll(ctx context.Context, ops map[string]gfshutdown.Operation) error {
	var err error
	for name, op := range ops {
		if opErr := op(ctx); opErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown %s: %w", name, opErr))
		}
	}
	return err
}

// initCalculator builds the calculator handler on top of the global OTel
// providers. Call it after initTelemetry.
func initCalculator(logger *zap.Logger) (*calculator.Handler, error) {
	metrics, err := calculator.NewMetrics(otel.Meter("calculator"))
	if err != nil {
		return nil, err
	}

	return calculator.NewHandler(logger, otel.Tracer("calculator"), metrics), nil
}
