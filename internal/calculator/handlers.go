package calculator

import (
	"fmt"
	"net/http"
	"time"

	"calculator-microservice/internal/handlers"
	"calculator-microservice/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Handler serves the arithmetic endpoints. It holds no per-request state and
// is safe for concurrent use.
type Handler struct {
	logger  *zap.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

func NewHandler(logger *zap.Logger, tracer trace.Tracer, metrics *Metrics) *Handler {
	return &Handler{logger: logger, tracer: tracer, metrics: metrics}
}

// Serve returns the GET handler for op: validate the query, evaluate,
// answer with the envelope.
func (h *Handler) Serve(op Operation) http.HandlerFunc {
	opName := op.Name()

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := observability.LoggerWithTrace(ctx, h.logger)
		requestID := observability.RequestIDFromContext(ctx)

		ctx, span := h.tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
			trace.WithAttributes(
				attribute.String("calculator.operation", opName),
				attribute.String("request.id", requestID),
			),
		)
		defer span.End()

		in, err := ParseOperands(op, r.URL.Query())
		if err != nil {
			status, msg := Classify(err)
			observability.RecordError(ctx, span, logger, h.metrics.errors, opName, msg, err, status, w)
			return
		}

		operandFields := []zap.Field{zap.Float64("n1", in.N1)}
		span.SetAttributes(attribute.Float64("calculator.operand.n1", in.N1))
		if op.Arity() == 2 {
			operandFields = append(operandFields, zap.Float64("n2", in.N2))
			span.SetAttributes(attribute.Float64("calculator.operand.n2", in.N2))
		}

		logger.Info(op.Label()+" operation",
			append(operandFields,
				zap.String("operation", opName),
				zap.String("request_id", requestID),
			)...,
		)

		start := time.Now()
		result, err := op.Eval(in)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

		if err != nil {
			status, msg := Classify(err)
			observability.RecordError(ctx, span, logger, h.metrics.errors, opName, msg, err, status, w)
			return
		}

		attrs := metric.WithAttributes(attribute.String("operation", opName))
		h.metrics.ops.Add(ctx, 1, attrs)
		h.metrics.duration.Record(ctx, elapsed, attrs)
		h.metrics.lastValue.Record(ctx, result, attrs)

		span.AddEvent("computation.complete", trace.WithAttributes(
			attribute.Float64("result", result),
			attribute.Float64("duration_ms", elapsed),
		))
		span.SetAttributes(attribute.Float64("calculator.result", result))
		span.SetStatus(codes.Ok, "")

		handlers.WriteData(w, http.StatusOK, result)
	}
}
