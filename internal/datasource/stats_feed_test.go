package datasource

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
)

func newFeedTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestFeed(t *testing.T, handler http.HandlerFunc, cacheTTL int) (*HTTPStatsFeed, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.StatsFeedConfig{
		APIURL:          server.URL,
		APIKey:          "test-key",
		CacheTTLSeconds: cacheTTL,
	}
	clientCfg := DefaultHTTPClientConfig()
	clientCfg.MaxRetries = 0
	clientCfg.RateLimit = 1000
	client := NewRateLimitedHTTPClient(clientCfg, newFeedTestLogger())
	t.Cleanup(func() { client.Close() })

	return NewHTTPStatsFeed(cfg, client, newFeedTestLogger()), server
}

func TestTeamStatsForWeekParsesPayload(t *testing.T) {
	var requests int
	feed, _ := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if r.URL.Path != "/seasons/2025/weeks/6/team-stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"team_id":"KC","season":2025,"week":6,"off_epa_per_play":0.12,"seconds_per_play":27.5}]`)
	}, 60)

	stats, err := feed.TeamStatsForWeek(context.Background(), 2025, 6)
	if err != nil {
		t.Fatalf("TeamStatsForWeek failed: %v", err)
	}
	if len(stats) != 1 || stats[0].TeamID != "KC" {
		t.Fatalf("unexpected payload: %+v", stats)
	}
	if stats[0].OffEPAPerPlay != 0.12 {
		t.Errorf("expected off EPA 0.12, got %v", stats[0].OffEPAPerPlay)
	}

	// Second call within the TTL must come from cache
	if _, err := feed.TeamStatsForWeek(context.Background(), 2025, 6); err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected 1 upstream request, got %d", requests)
	}
}

func TestFeedErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode string
	}{
		{"unauthorized", http.StatusUnauthorized, ErrCodeAuthenticationFailed},
		{"not found", http.StatusNotFound, ErrCodeNotFound},
		{"server error", http.StatusConflict, ErrCodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, _ := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}, 0)

			_, err := feed.LinesForWeek(context.Background(), 2025, 6)
			if err == nil {
				t.Fatal("expected an error")
			}
			fe, ok := err.(*FeedError)
			if !ok {
				t.Fatalf("expected *FeedError, got %T", err)
			}
			if fe.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, fe.Code)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	feed, _ := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 0)

	_, err := feed.ResultsForWeek(context.Background(), 2025, 18)
	if !IsNotFound(err) {
		t.Errorf("expected not-found classification, got %v", err)
	}
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 2
	cfg.Timeout = time.Second
	client := NewRateLimitedHTTPClient(cfg, newFeedTestLogger())
	defer client.Close()

	// A closed server yields connection errors on every request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	for i := 0; i < 2; i++ {
		if _, err := client.Get(context.Background(), url); err == nil {
			t.Fatal("expected a connection error")
		}
	}

	if !client.Open() {
		t.Fatal("expected circuit breaker to be open")
	}
	if _, err := client.Get(context.Background(), url); err == nil {
		t.Fatal("expected circuit breaker to reject the request")
	}

	client.Reset()
	if client.Open() {
		t.Error("expected circuit breaker to close after reset")
	}
}
