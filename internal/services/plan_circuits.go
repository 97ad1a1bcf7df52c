package services

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"circuit-planner-service/internal/ports"
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxCircuits bounds the circuit count a single session may request.
const MaxCircuits = 50

type PlanCircuitsRequest struct {
	Hub       string
	Member    string
	ClassTier int
	Speed     int
	MaxRange  int
	Count     int
	Search    SearchOptions
}

// The result of one planning session.
type CircuitPlan struct {
	Hub        domain.Hub
	Excluded   int
	Annotation AnnotateStats
	CircuitSet
}

// Validate checks the scalar session parameters.
func (r PlanCircuitsRequest) Validate() error {
	switch {
	case r.ClassTier < 0:
		return fmt.Errorf("aircraft class must not be negative: %w", ErrInvalidParameters)
	case r.Speed <= 0:
		return fmt.Errorf("speed must be positive: %w", ErrInvalidParameters)
	case r.MaxRange < 0:
		return fmt.Errorf("max range must not be negative: %w", ErrInvalidParameters)
	case r.Count < 1 || r.Count > MaxCircuits:
		return fmt.Errorf("circuit count must be between 1 and %d: %w", MaxCircuits, ErrInvalidParameters)
	}
	return nil
}

// PlanCircuits runs one planning session: it loads the hub's routes and the
// network's excluded destinations, annotates the routes into a pool, and builds
// up to req.Count circuits from it.
//
// exclusions may be nil, in which case no destination is excluded. An empty
// pool or an exhausted search is reported through the returned plan's Status,
// not as an error.
func PlanCircuits(
	ctx context.Context,
	req PlanCircuitsRequest,
	catalog ports.RouteCatalog,
	exclusions ports.ExclusionSource,
) (_ *CircuitPlan, err error) {
	defer obs.Time(ctx, "services.PlanCircuits")(&err)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("plan circuits: %w", err)
	}

	hub, err := ResolveHub(ctx, catalog, req.Hub)
	if err != nil {
		return nil, fmt.Errorf("plan circuits: %w", err)
	}

	// The catalog read and the network scrape are independent; run them together.
	var (
		raw      []domain.RawRoute
		excluded = domain.NewDestinationSet()
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		routes, err := catalog.ListRoutes(gctx, hub.Code)
		if err != nil {
			return fmt.Errorf("list routes for hub %q: %w", hub.Code, err)
		}
		raw = routes
		return nil
	})
	if exclusions != nil {
		g.Go(func() error {
			set, err := exclusions.ExcludedDestinations(gctx, req.Member)
			if err != nil {
				return fmt.Errorf("excluded destinations for member %q: %w", req.Member, err)
			}
			excluded = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan circuits: %w", err)
	}

	routes, stats, err := AnnotateRoutes(raw, excluded, AnnotateParams{
		ClassTier: req.ClassTier,
		MaxRange:  req.MaxRange,
		Speed:     req.Speed,
	})
	if err != nil {
		return nil, fmt.Errorf("plan circuits: %w", err)
	}

	obs.Logger(ctx).Info("routes annotated",
		zap.String("hub", hub.Code),
		zap.Int("catalog", stats.Total),
		zap.Int("excluded", stats.Excluded),
		zap.Int("malformed", stats.Malformed),
		zap.Int("out_of_range", stats.OutOfRange),
		zap.Int("class_mismatch", stats.ClassMismatch),
		zap.Int("kept", stats.Kept),
	)

	set, err := BuildCircuits(ctx, NewPool(routes), req.Count, req.Search)
	if err != nil {
		return nil, fmt.Errorf("plan circuits: %w", err)
	}

	obs.Logger(ctx).Info("circuits built",
		zap.String("hub", hub.Code),
		zap.Int("requested", set.Requested),
		zap.Int("built", len(set.Circuits)),
		zap.String("status", string(set.Status())),
		zap.Int("steps", set.Steps),
		zap.Bool("truncated", set.Truncated),
	)

	return &CircuitPlan{
		Hub:        hub,
		Excluded:   len(excluded),
		Annotation: stats,
		CircuitSet: set,
	}, nil
}
