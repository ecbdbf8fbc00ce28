package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calculator-microservice/internal/calculator"
	"calculator-microservice/internal/observability"
	"calculator-microservice/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, origins ...string) http.Handler {
	t.Helper()

	logger := zap.NewNop()

	metrics, err := calculator.NewMetrics(metricnoop.NewMeterProvider().Meter("calculator"))
	if err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	reg := prometheus.NewRegistry()
	httpMetrics, err := observability.NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("initializing http metrics: %v", err)
	}

	return NewRouter(Options{
		Logger:      logger,
		Calculator:  calculator.NewHandler(logger, tracenoop.NewTracerProvider().Tracer("calculator"), metrics),
		HTTPMetrics: httpMetrics,
		Gatherer:    reg,
		CORSOrigins: origins,
	})
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterAddSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/add?n1=2&n2=3", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["data"].(float64); !ok || got != 5 {
		t.Fatalf("expected data 5, got %#v", payload["data"])
	}

	if got, ok := payload["statuscode"].(float64); !ok || got != 200 {
		t.Fatalf("expected statuscode 200, got %#v", payload["statuscode"])
	}
}

func TestNewRouterMountsEveryOperation(t *testing.T) {
	router := newTestRouter(t)

	for _, op := range calculator.Operations() {
		t.Run(op.Name(), func(t *testing.T) {
			w := testutil.Get(router, "/"+op.Name()+"?n1=4&n2=2")
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)
		})
	}
}

func TestNewRouterEnvelopesUnknownRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		status int
		msg    string
	}{
		{http.MethodGet, "/calculator/add", http.StatusNotFound, "Not found"},
		{http.MethodPost, "/add?n1=1&n2=2", http.StatusMethodNotAllowed, "Method not allowed"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := testutil.ExecuteRequest(httptest.NewRequest(tc.method, tc.path, nil), router)
			testutil.CheckResponseCode(t, tc.status, w.Code)

			var body map[string]any
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["msg"] != tc.msg {
				t.Fatalf("expected msg %q, got %#v", tc.msg, body["msg"])
			}
		})
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	_ = testutil.Get(router, "/add?n1=1&n2=1")
	w := testutil.Get(router, "/metrics")

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if !strings.Contains(w.Body.String(), `http_requests_total{method="GET",route="/add",status="200"} 1`) {
		t.Fatalf("expected /add request counter in exposition, got:\n%s", w.Body.String())
	}
}

func TestNewRouterCountsRecoveredPanics(t *testing.T) {
	router := newTestRouter(t)
	router.(chi.Router).Get("/explode", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := testutil.Get(router, "/explode")
	testutil.CheckResponseCode(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body["msg"] != "Internal server error" {
		t.Fatalf("expected msg %q, got %#v", "Internal server error", body["msg"])
	}

	w = testutil.Get(router, "/metrics")
	if !strings.Contains(w.Body.String(), `http_requests_total{method="GET",route="/explode",status="500"} 1`) {
		t.Fatalf("expected recovered panic in request counter, got:\n%s", w.Body.String())
	}
}

func TestNewRouterCORS(t *testing.T) {
	router := newTestRouter(t, "https://app.example")

	req := httptest.NewRequest(http.MethodGet, "/add?n1=1&n2=1", nil)
	req.Header.Set("Origin", "https://app.example")
	w := testutil.ExecuteRequest(req, router)

	if got := w.Result().Header.Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/add?n1=1&n2=1", nil)
	req.Header.Set("Origin", "https://other.example")
	w = testutil.ExecuteRequest(req, router)

	if got := w.Result().Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allowed origin header for unlisted origin, got %q", got)
	}
}
