package acquisition

import (
	"circuit-planner-service/internal/domain"
	"context"
	"slices"
)

// StaticExclusionSource serves fixed excluded-destination sets, keyed by member.
// Members without an entry get Default. Err, when set, is returned instead.
type StaticExclusionSource struct {
	Members map[string][]string
	Default []string
	Err     error
	Calls   int
}

func (s *StaticExclusionSource) ExcludedDestinations(ctx context.Context, member string) (domain.DestinationSet, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	if codes, ok := s.Members[member]; ok {
		return domain.NewDestinationSet(codes...), nil
	}
	return domain.NewDestinationSet(s.Default...), nil
}

func (s *StaticExclusionSource) ListMembers(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(s.Members))
	for m := range s.Members {
		out = append(out, m)
	}
	slices.Sort(out)
	return out, nil
}
