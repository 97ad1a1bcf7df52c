package ports

import (
	"circuit-planner-service/internal/domain"
	"context"
	"time"
)

// Cache for excluded-destination sets keyed by member.
type ExclusionCache interface {
	// Get reports found=false on a miss; an empty cached set is a hit.
	Get(ctx context.Context, member string) (set domain.DestinationSet, found bool, err error)
	Put(ctx context.Context, member string, set domain.DestinationSet, ttl time.Duration) error
}
