package services

import (
	"circuit-planner-service/internal/adapters/acquisition"
	"circuit-planner-service/internal/adapters/repositories"
	"circuit-planner-service/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// At 1000 km/h a 20,000 km leg is 40h of flight plus 2h turnaround: four of
// them fill a 168h week.
func testCatalog() *repositories.MemoryRouteRepository {
	repo := repositories.NewMemoryRouteRepository()
	repo.AddHub("Hub CDG - Paris",
		domain.RawRoute{Destination: "JFK", Distance: "20,000 km", Categories: 3},
		domain.RawRoute{Destination: "LAX", Distance: "20,000 km", Categories: 2},
		domain.RawRoute{Destination: "SIN", Distance: "20,000 km", Categories: 4},
		domain.RawRoute{Destination: "HND", Distance: "20,000 km", Categories: 5},
		domain.RawRoute{Destination: "DXB", Distance: "20,000 km", Categories: 1},
		domain.RawRoute{Destination: "SYD", Distance: "40,000 km", Categories: 1},
		domain.RawRoute{Destination: "GRU", Distance: "unknown", Categories: 1},
		domain.RawRoute{Destination: "NRT", Distance: "20,000 km", Categories: 9},
	)
	repo.AddHub("Hub LHR - London")
	return repo
}

func baseRequest() PlanCircuitsRequest {
	return PlanCircuitsRequest{
		Hub:       "cdg",
		Member:    "ace",
		ClassTier: 5,
		Speed:     1000,
		MaxRange:  30000,
		Count:     2,
	}
}

func TestPlanCircuitsPartial(t *testing.T) {
	exclusions := &acquisition.StaticExclusionSource{
		Members: map[string][]string{"ace": {"dxb"}},
	}

	plan, err := PlanCircuits(context.Background(), baseRequest(), testCatalog(), exclusions)
	require.NoError(t, err)

	assert.Equal(t, domain.Hub{Code: "CDG", Name: "Hub CDG - Paris"}, plan.Hub)
	assert.Equal(t, 1, plan.Excluded)
	assert.Equal(t, AnnotateStats{
		Total: 8, Excluded: 1, Malformed: 1, OutOfRange: 1, ClassMismatch: 1, Kept: 4,
	}, plan.Annotation)

	require.Len(t, plan.Circuits, 1)
	assert.Equal(t, []string{"HND", "JFK", "LAX", "SIN"}, plan.Circuits[0].Destinations())
	assert.Equal(t, domain.WeeklyBudget, plan.Circuits[0].DutySum())
	assert.Equal(t, StatusPartial, plan.Status())
	assert.Equal(t, 1, exclusions.Calls)
}

func TestPlanCircuitsWithoutExclusionSource(t *testing.T) {
	req := baseRequest()
	req.Count = 1

	plan, err := PlanCircuits(context.Background(), req, testCatalog(), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, plan.Status())
	assert.Equal(t, 0, plan.Excluded)
	// DXB sorts first among the equal legs once it is no longer excluded.
	assert.Equal(t, []string{"DXB", "HND", "JFK", "LAX"}, plan.Circuits[0].Destinations())
}

func TestPlanCircuitsNoValidRoutes(t *testing.T) {
	req := baseRequest()
	req.Hub = "Hub LHR - London"

	plan, err := PlanCircuits(context.Background(), req, testCatalog(), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusNoValidRoutes, plan.Status())
	assert.Empty(t, plan.Circuits)
}

func TestPlanCircuitsInvalidParameters(t *testing.T) {
	cases := map[string]func(*PlanCircuitsRequest){
		"zero speed":     func(r *PlanCircuitsRequest) { r.Speed = 0 },
		"negative range": func(r *PlanCircuitsRequest) { r.MaxRange = -1 },
		"negative class": func(r *PlanCircuitsRequest) { r.ClassTier = -1 },
		"zero count":     func(r *PlanCircuitsRequest) { r.Count = 0 },
		"huge count":     func(r *PlanCircuitsRequest) { r.Count = MaxCircuits + 1 },
		"empty hub":      func(r *PlanCircuitsRequest) { r.Hub = " " },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := baseRequest()
			mutate(&req)
			_, err := PlanCircuits(context.Background(), req, testCatalog(), nil)
			require.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}

func TestPlanCircuitsUnknownHub(t *testing.T) {
	req := baseRequest()
	req.Hub = "ZZZ"

	_, err := PlanCircuits(context.Background(), req, testCatalog(), nil)
	require.ErrorIs(t, err, ErrHubNotFound)
}

func TestPlanCircuitsExclusionFailure(t *testing.T) {
	boom := errors.New("login rejected")
	exclusions := &acquisition.StaticExclusionSource{Err: boom}

	_, err := PlanCircuits(context.Background(), baseRequest(), testCatalog(), exclusions)
	require.ErrorIs(t, err, boom)
}
