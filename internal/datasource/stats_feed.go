package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const feedName = "stats_feed"

// HTTPStatsFeed implements StatsFeed against the provider's JSON API.
// Responses are cached per path for the configured TTL so the weekly
// publish loop and the calibrator can share fetches.
type HTTPStatsFeed struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger

	cacheTTL time.Duration
	mu       sync.Mutex
	cache    map[string]cacheEntry
}

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewHTTPStatsFeed creates a stats feed client from the feed config section
func NewHTTPStatsFeed(cfg *config.StatsFeedConfig, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *HTTPStatsFeed {
	return &HTTPStatsFeed{
		httpClient: httpClient,
		baseURL:    cfg.APIURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
		cacheTTL:   time.Duration(cfg.CacheTTLSeconds) * time.Second,
		cache:      make(map[string]cacheEntry),
	}
}

// Name returns the name of the feed
func (f *HTTPStatsFeed) Name() string { return feedName }

// TeamStatsForWeek retrieves every team's efficiency snapshot for a week
func (f *HTTPStatsFeed) TeamStatsForWeek(ctx context.Context, season, week int) ([]*models.TeamWeekStats, error) {
	path := fmt.Sprintf("/seasons/%d/weeks/%d/team-stats", season, week)

	var stats []*models.TeamWeekStats
	if err := f.fetchJSON(ctx, path, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// LinesForWeek retrieves the posted market lines for a week
func (f *HTTPStatsFeed) LinesForWeek(ctx context.Context, season, week int) ([]*models.MarketLine, error) {
	path := fmt.Sprintf("/seasons/%d/weeks/%d/lines", season, week)

	var lines []*models.MarketLine
	if err := f.fetchJSON(ctx, path, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ResultsForWeek retrieves final scores for a played week
func (f *HTTPStatsFeed) ResultsForWeek(ctx context.Context, season, week int) ([]*models.GameResult, error) {
	path := fmt.Sprintf("/seasons/%d/weeks/%d/results", season, week)

	var results []*models.GameResult
	if err := f.fetchJSON(ctx, path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (f *HTTPStatsFeed) fetchJSON(ctx context.Context, path string, out any) error {
	if payload, ok := f.cached(path); ok {
		metrics.RecordStatsFeedRequest("cache_hit")
		return json.Unmarshal(payload, out)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return NewFeedError(feedName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(ctx, req)
	if err != nil {
		metrics.RecordStatsFeedRequest("error")
		return NewFeedError(feedName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.RecordStatsFeedRequest("error")
		return NewFeedError(feedName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusNotFound:
		metrics.RecordStatsFeedRequest("not_found")
		return NewFeedError(feedName, ErrCodeNotFound, path, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.RecordStatsFeedRequest("error")
		return NewFeedError(feedName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode != http.StatusOK:
		metrics.RecordStatsFeedRequest("error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return NewFeedError(feedName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordStatsFeedRequest("error")
		return NewFeedError(feedName, ErrCodeNetworkError, "failed to read response", err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		metrics.RecordStatsFeedRequest("error")
		return NewFeedError(feedName, ErrCodeInvalidData, "failed to parse response", err)
	}

	metrics.RecordStatsFeedRequest("success")
	f.store(path, payload)

	f.logger.WithFields(logrus.Fields{
		"feed": feedName,
		"path": path,
	}).Debug("Fetched stats feed payload")

	return nil
}

func (f *HTTPStatsFeed) cached(path string) ([]byte, bool) {
	if f.cacheTTL <= 0 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.cache[path]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(f.cache, path)
		return nil, false
	}
	return entry.payload, true
}

func (f *HTTPStatsFeed) store(path string, payload []byte) {
	if f.cacheTTL <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache[path] = cacheEntry{payload: payload, expiresAt: time.Now().Add(f.cacheTTL)}
}
