package services

import (
	"circuit-planner-service/internal/domain"
	"cmp"
	"fmt"
	"slices"
)

// Session parameters that decide which catalog routes an aircraft can fly.
type AnnotateParams struct {
	ClassTier int
	MaxRange  int
	Speed     int
	// UsesPerRoute is how many circuits of one session may share a route.
	// Zero means one.
	UsesPerRoute int
}

// Counters describing why catalog routes were dropped during annotation.
type AnnotateStats struct {
	Total         int
	Excluded      int
	Malformed     int
	OutOfRange    int
	ClassMismatch int
	Kept          int
}

// AnnotateRoutes filters a hub's raw catalog down to the routes the session's
// aircraft can fly and freezes each route's duty time.
//
// Records with an excluded destination, a malformed distance, or an empty
// destination are skipped silently; only an unusable speed is an error. The
// result is sorted by destination so that the same catalog always yields the
// same pool regardless of the order records were read in.
func AnnotateRoutes(
	raw []domain.RawRoute,
	excluded domain.DestinationSet,
	p AnnotateParams,
) ([]domain.Route, AnnotateStats, error) {
	stats := AnnotateStats{Total: len(raw)}

	if p.Speed <= 0 {
		return nil, stats, fmt.Errorf("annotate routes: speed must be positive, got %d: %w", p.Speed, ErrInvalidParameters)
	}

	uses := p.UsesPerRoute
	if uses <= 0 {
		uses = 1
	}

	routes := make([]domain.Route, 0, len(raw))
	for _, r := range raw {
		dest := domain.NormalizeDestination(r.Destination)
		if dest == "" {
			stats.Malformed++
			continue
		}

		if excluded.Contains(dest) {
			stats.Excluded++
			continue
		}

		distance, err := domain.ParseDistance(r.Distance)
		if err != nil {
			stats.Malformed++
			continue
		}

		if distance > p.MaxRange {
			stats.OutOfRange++
			continue
		}

		if r.Categories > p.ClassTier {
			stats.ClassMismatch++
			continue
		}

		routes = append(routes, domain.Route{
			Destination:      dest,
			Distance:         distance,
			ClassRequirement: r.Categories,
			DutyTime:         domain.ComputeDutyTime(distance, p.Speed),
			RemainingUses:    uses,
		})
	}

	slices.SortFunc(routes, func(a, b domain.Route) int {
		return cmp.Or(
			cmp.Compare(a.Destination, b.Destination),
			cmp.Compare(a.Distance, b.Distance),
			cmp.Compare(a.ClassRequirement, b.ClassRequirement),
		)
	})

	stats.Kept = len(routes)
	return routes, stats, nil
}
