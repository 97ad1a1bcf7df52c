package ports

import (
	"circuit-planner-service/internal/domain"
	"context"
)

// Contract for retrieving destinations already committed elsewhere in the
// network. member selects whose network is read; sources that only know one
// network may ignore it.
type ExclusionSource interface {
	ExcludedDestinations(ctx context.Context, member string) (domain.DestinationSet, error)
}

// Optional extension of ExclusionSource for sources that can enumerate members.
type MemberDirectory interface {
	ExclusionSource
	ListMembers(ctx context.Context) ([]string, error)
}
