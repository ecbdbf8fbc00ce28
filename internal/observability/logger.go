package observability

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"calculator-microservice/internal/config"
)

const (
	CombinedLogFile = "combined.log"
	ErrorLogFile    = "error.log"
)

// NewLogger builds the service logger. Entries at the configured level and
// above go to combined.log, error entries additionally go to error.log, and
// outside production everything is mirrored to stdout.
//
// The returned close function flushes the logger and releases the files.
func NewLogger(cfg config.Config) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}

	combined, closeCombined, err := zap.Open(filepath.Join(cfg.LogDir, CombinedLogFile))
	if err != nil {
		return nil, nil, fmt.Errorf("opening combined log: %w", err)
	}

	errorSink, closeError, err := zap.Open(filepath.Join(cfg.LogDir, ErrorLogFile))
	if err != nil {
		closeCombined()
		return nil, nil, fmt.Errorf("opening error log: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), combined, cfg.LogLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), errorSink, zapcore.ErrorLevel),
	}

	if !cfg.Production() {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stdout),
			cfg.LogLevel,
		))
	}

	logger := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.Fields(zap.String("service", cfg.ServiceName)),
	)

	closeFn := func() {
		_ = logger.Sync()
		closeError()
		closeCombined()
	}

	return logger, closeFn, nil
}

// LoggerWithTrace returns a child of logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself is attached as a zap.Any("context", ctx) field: the otelzap
// bridge uses any field holding a context.Context as the context for
// log.Logger.Emit, so exported OTLP records carry the native TraceID/SpanID.
// Without it every exported record has an all-zero trace id.
func LoggerWithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return logger
	}

	return logger.With(
		zap.Any("context", ctx),
		// Human-readable fields for stdout JSON and ad-hoc log grepping.
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
