package gemini

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/commentary"
	"github.com/riskibarqy/season-engine/internal/platform/resilience"
	"github.com/riskibarqy/season-engine/internal/usecase"
)

const okBody = `{"candidates":[{"content":{"parts":[{"text":"What a match!"}]},"finishReason":"STOP"}]}`

func TestClient_MatchCommentary_Success(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(okBody))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "secret", Model: "test-model"})
	text, err := client.MatchCommentary(context.Background(), commentary.MatchSummary{
		HomeTeam:   "Home FC",
		AwayTeam:   "Away United",
		HomeGoals:  2,
		AwayGoals:  1,
		KeyMoments: []string{"88' - GOAL FOR HOME FC!"},
	})
	if err != nil {
		t.Fatalf("match commentary: %v", err)
	}
	if text != "What a match!" {
		t.Fatalf("unexpected text: got=%q", text)
	}
	if gotPath != "/models/test-model:generateContent" {
		t.Fatalf("unexpected path: got=%s", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("api key header not sent: got=%q", gotKey)
	}
	if !strings.Contains(gotBody, "Final score: 2 x 1") || !strings.Contains(gotBody, "88' - GOAL FOR HOME FC!") {
		t.Fatalf("prompt missing match details: %s", gotBody)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if _, err := client.ScoutReport(context.Background(), "Striker, 24 years old"); !errors.Is(err, commentary.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(okBody))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k", MaxRetries: 1})
	text, err := client.ScoutReport(context.Background(), "Keeper, 36 years old")
	if err != nil {
		t.Fatalf("scout report: %v", err)
	}
	if text == "" || calls.Load() != 2 {
		t.Fatalf("expected one retry: calls=%d text=%q", calls.Load(), text)
	}
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k", MaxRetries: 3})
	if _, err := client.ScoutReport(context.Background(), "Winger"); err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("unexpected call count: got=%d want=1", calls.Load())
	}
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "k",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.ScoutReport(context.Background(), "Midfielder"); err == nil {
		t.Fatalf("expected first request to fail")
	}
	_, err := client.ScoutReport(context.Background(), "Midfielder")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once the circuit is open, got %v", err)
	}
}

func TestClient_EmptyCandidateIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	if _, err := client.MatchCommentary(context.Background(), commentary.MatchSummary{}); !errors.Is(err, errEmptyCandidate) {
		t.Fatalf("expected errEmptyCandidate, got %v", err)
	}
}
