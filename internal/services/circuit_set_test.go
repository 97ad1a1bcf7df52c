package services

import (
	"circuit-planner-service/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCircuitsFewerThanRequested(t *testing.T) {
	pool := poolOf(leg{"A", 10}, leg{"B", 8}, leg{"C", 10}, leg{"D", 8}, leg{"E", 5})

	set, err := BuildCircuits(context.Background(), pool, 3, budgetHours(18))
	require.NoError(t, err)

	require.Len(t, set.Circuits, 2)
	assert.Equal(t, StatusPartial, set.Status())
	assert.Equal(t, 3, set.Requested)

	assert.Equal(t, 1, set.Circuits[0].Number)
	assert.Equal(t, []string{"A", "B"}, set.Circuits[0].Destinations())
	assert.Equal(t, 2, set.Circuits[1].Number)
	assert.Equal(t, []string{"C", "D"}, set.Circuits[1].Destinations())

	for _, c := range set.Circuits {
		assert.Equal(t, domain.Hours(18), c.Budget)
		assert.Equal(t, c.Budget, c.DutySum())
	}
}

func TestBuildCircuitsUsageConservation(t *testing.T) {
	pool := poolOf(
		leg{"A", 84}, leg{"B", 84}, leg{"C", 60}, leg{"D", 60}, leg{"E", 48},
		leg{"F", 100}, leg{"G", 68}, leg{"H", 24}, leg{"I", 24}, leg{"J", 20},
	)

	set, err := BuildCircuits(context.Background(), pool, 5, SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, set.Circuits)

	appearances := map[string]int{}
	for _, c := range set.Circuits {
		assert.Equal(t, domain.WeeklyBudget, c.DutySum())
		for _, d := range c.Destinations() {
			appearances[d]++
		}
	}

	for i, r := range pool.Routes() {
		assert.Equal(t, appearances[r.Destination], pool.Used(i), r.Destination)
		assert.GreaterOrEqual(t, r.RemainingUses, 0)
		assert.LessOrEqual(t, r.RemainingUses, 1)
	}
}

func TestBuildCircuitsComplete(t *testing.T) {
	pool := poolOf(leg{"A", 10}, leg{"B", 5}, leg{"C", 3}, leg{"D", 18})

	set, err := BuildCircuits(context.Background(), pool, 2, budgetHours(18))
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, set.Status())
	require.Len(t, set.Circuits, 2)
	assert.Equal(t, []string{"D"}, set.Circuits[0].Destinations())
	assert.Equal(t, []string{"A", "B", "C"}, set.Circuits[1].Destinations())
}

func TestBuildCircuitsNoValidRoutes(t *testing.T) {
	set, err := BuildCircuits(context.Background(), NewPool(nil), 2, SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, set.Circuits)
	assert.Equal(t, StatusNoValidRoutes, set.Status())
}

func TestBuildCircuitsNoCircuits(t *testing.T) {
	set, err := BuildCircuits(context.Background(), poolOf(leg{"A", 10}, leg{"B", 7}), 2, budgetHours(18))
	require.NoError(t, err)
	assert.Empty(t, set.Circuits)
	assert.Equal(t, StatusNoCircuits, set.Status())
}

func TestBuildCircuitsStepLimitKeepsBuiltCircuits(t *testing.T) {
	pool := poolOf(leg{"A", 18}, leg{"B", 10}, leg{"C", 9}, leg{"D", 7})

	set, err := BuildCircuits(context.Background(), pool, 2, SearchOptions{Budget: domain.Hours(18), MaxSteps: 2})
	require.NoError(t, err)
	assert.True(t, set.Truncated)
	require.Len(t, set.Circuits, 1)
	assert.Equal(t, []string{"A"}, set.Circuits[0].Destinations())
	assert.Equal(t, StatusPartial, set.Status())
}

func TestBuildCircuitsStepLimitBeforeFirstCircuit(t *testing.T) {
	// A+B+C fills the budget, but one step is not enough to find it.
	pool := poolOf(leg{"A", 100}, leg{"B", 60}, leg{"C", 8})

	set, err := BuildCircuits(context.Background(), pool, 1, SearchOptions{MaxSteps: 1})
	require.NoError(t, err)
	assert.True(t, set.Truncated)
	assert.Empty(t, set.Circuits)
	assert.Equal(t, StatusTruncated, set.Status())

	for i := range pool.Routes() {
		assert.Zero(t, pool.Used(i))
	}
}

func TestBuildCircuitsRejectsCount(t *testing.T) {
	_, err := BuildCircuits(context.Background(), poolOf(leg{"A", 18}), 0, budgetHours(18))
	require.ErrorIs(t, err, ErrInvalidParameters)
}
