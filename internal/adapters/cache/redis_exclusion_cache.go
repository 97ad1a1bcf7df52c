package cache

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix = "circuits:excluded:"
	selfMemberKey    = "_self"
)

// Redis-backed implementation of the ExclusionCache port. Sets are stored as
// a sorted JSON array under one key per member.
type RedisExclusionCache struct {
	Client *redis.Client
	Prefix string
}

func NewRedisExclusionCache(client *redis.Client) *RedisExclusionCache {
	return &RedisExclusionCache{Client: client, Prefix: DefaultKeyPrefix}
}

func (c *RedisExclusionCache) key(member string) string {
	if member == "" {
		member = selfMemberKey
	}
	return c.Prefix + member
}

func (c *RedisExclusionCache) Get(ctx context.Context, member string) (_ domain.DestinationSet, _ bool, err error) {
	defer obs.Time(ctx, "redis.GetExcluded")(&err)

	if c.Client == nil {
		return nil, false, errors.New("redis exclusion cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, c.key(member)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get excluded: read %q: %w", c.key(member), err)
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, false, fmt.Errorf("get excluded: decode %q: %w", c.key(member), err)
	}
	return domain.NewDestinationSet(codes...), true, nil
}

// Put stores set for ttl. A non-positive ttl keeps the entry until replaced.
func (c *RedisExclusionCache) Put(ctx context.Context, member string, set domain.DestinationSet, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "redis.PutExcluded")(&err)

	if c.Client == nil {
		return errors.New("redis exclusion cache: client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	raw, err := json.Marshal(set.Sorted())
	if err != nil {
		return fmt.Errorf("put excluded: encode: %w", err)
	}
	if err := c.Client.Set(ctx, c.key(member), raw, ttl).Err(); err != nil {
		return fmt.Errorf("put excluded: write %q: %w", c.key(member), err)
	}
	return nil
}
