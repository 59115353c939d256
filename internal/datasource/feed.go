package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// StatsFeed defines the interface for the upstream statistics provider.
// All three endpoints are keyed by season and week; results exist only for
// played games.
type StatsFeed interface {
	// TeamStatsForWeek retrieves every team's efficiency snapshot for a week
	TeamStatsForWeek(ctx context.Context, season, week int) ([]*models.TeamWeekStats, error)

	// LinesForWeek retrieves the posted market lines for a week
	LinesForWeek(ctx context.Context, season, week int) ([]*models.MarketLine, error)

	// ResultsForWeek retrieves final scores for a played week
	ResultsForWeek(ctx context.Context, season, week int) ([]*models.GameResult, error)

	// Name returns the name of the feed
	Name() string
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// FeedError represents errors from stats feed operations
type FeedError struct {
	Feed    string // feed name
	Code    string // error code
	Message string
	Err     error
}

func (e *FeedError) Error() string {
	if e.Err != nil {
		return e.Feed + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Feed + ": " + e.Code + ": " + e.Message
}

func (e *FeedError) Unwrap() error { return e.Err }

// NewFeedError creates a new stats feed error
func NewFeedError(feed, code, message string, err error) *FeedError {
	return &FeedError{Feed: feed, Code: code, Message: message, Err: err}
}

// IsNotFound reports whether err is a feed-level not found answer
func IsNotFound(err error) bool {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe.Code == ErrCodeNotFound
	}
	return false
}
