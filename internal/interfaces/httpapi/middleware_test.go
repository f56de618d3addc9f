package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"/healthz":                   false,
		" /HEALTHZ ":                 false,
		"/livez":                     false,
		"/readyz":                    false,
		"/v1/teams":                  true,
		"/v1/seasons/season-1/table": true,
		"/":                          true,
	}
	for path, want := range tests {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q) got=%v want=%v", path, got, want)
		}
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	const seasonOrigin = "https://season-engine.example.com"
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "configured origin", allowed: []string{" " + seasonOrigin}, method: http.MethodGet, origin: seasonOrigin, wantStatus: http.StatusOK, wantOrigin: seasonOrigin},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: seasonOrigin, wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodPost, origin: seasonOrigin, wantStatus: http.StatusOK, wantOrigin: ""},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK, wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, "/v1/seasons/season-1/skip-week", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: got=%q want=%q", got, tt.wantOrigin)
			}
		})
	}
}

func TestRequestLogging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.FromZap(zap.New(core))

	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/seasons/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	for _, path := range []string{"/healthz", "/v1/seasons", "/v1/seasons/broken"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 2 {
		t.Fatalf("unexpected request log count: got=%d want=2", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].ContextMap()["status"] != int64(http.StatusCreated) {
		t.Fatalf("unexpected success entry: level=%s fields=%v", entries[0].Level, entries[0].ContextMap())
	}
	if entries[1].Level != zapcore.ErrorLevel || entries[1].ContextMap()["path"] != "/v1/seasons/broken" {
		t.Fatalf("unexpected failure entry: level=%s fields=%v", entries[1].Level, entries[1].ContextMap())
	}
}
