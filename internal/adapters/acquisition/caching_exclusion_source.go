package acquisition

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"circuit-planner-service/internal/ports"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var ErrMembersUnsupported = errors.New("exclusion source cannot list members")

// CachingExclusionSource consults Cache before asking Source, and stores what
// Source returns for TTL. Cache failures are logged and otherwise ignored.
type CachingExclusionSource struct {
	Source ports.ExclusionSource
	Cache  ports.ExclusionCache
	TTL    time.Duration
}

func NewCachingExclusionSource(source ports.ExclusionSource, cache ports.ExclusionCache, ttl time.Duration) *CachingExclusionSource {
	return &CachingExclusionSource{Source: source, Cache: cache, TTL: ttl}
}

func (c *CachingExclusionSource) ExcludedDestinations(ctx context.Context, member string) (domain.DestinationSet, error) {
	log := obs.Logger(ctx)

	if c.Cache != nil {
		set, found, err := c.Cache.Get(ctx, member)
		switch {
		case err != nil:
			log.Warn("exclusion cache read failed", zap.String("member", member), zap.Error(err))
		case found:
			log.Debug("exclusion cache hit", zap.String("member", member), zap.Int("size", len(set)))
			return set, nil
		}
	}

	set, err := c.Source.ExcludedDestinations(ctx, member)
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.Put(ctx, member, set, c.TTL); err != nil {
			log.Warn("exclusion cache write failed", zap.String("member", member), zap.Error(err))
		}
	}
	return set, nil
}

// ListMembers forwards to Source when it can enumerate members.
func (c *CachingExclusionSource) ListMembers(ctx context.Context) ([]string, error) {
	dir, ok := c.Source.(ports.MemberDirectory)
	if !ok {
		return nil, ErrMembersUnsupported
	}
	return dir.ListMembers(ctx)
}
