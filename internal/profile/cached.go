package profile

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// CachedBuilder wraps Builder with an in-memory profile cache. Profiles
// are immutable per (team, season, as-of-week), so cached copies never go
// stale within a run; the TTL only bounds memory across long sessions.
// Builds with situational overrides bypass the cache because overrides are
// game-specific.
type CachedBuilder struct {
	builder *Builder
	cache   *cache.Cache
	logger  *logrus.Logger
}

// NewCachedBuilder creates a caching wrapper around a Builder.
func NewCachedBuilder(builder *Builder, ttl time.Duration, logger *logrus.Logger) *CachedBuilder {
	if logger == nil {
		logger = logrus.New()
	}
	return &CachedBuilder{
		builder: builder,
		cache:   cache.New(ttl, ttl*2),
		logger:  logger,
	}
}

// BuildProfile returns the cached profile when available, building and
// caching it otherwise.
func (c *CachedBuilder) BuildProfile(ctx context.Context, teamID string, season, asOfWeek int, overrides *models.SituationalOverrides) (*models.TeamProfile, error) {
	if overrides != nil {
		return c.builder.BuildProfile(ctx, teamID, season, asOfWeek, overrides)
	}

	key := profileKey(teamID, season, asOfWeek)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.WithField("cache_key", key).Debug("Profile cache hit")
		return cached.(*models.TeamProfile), nil
	}

	p, err := c.builder.BuildProfile(ctx, teamID, season, asOfWeek, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, p, cache.DefaultExpiration)
	return p, nil
}

func profileKey(teamID string, season, asOfWeek int) string {
	return fmt.Sprintf("%s:%d:%d", teamID, season, asOfWeek)
}
