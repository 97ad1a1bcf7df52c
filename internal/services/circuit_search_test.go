package services

import (
	"circuit-planner-service/internal/domain"
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leg struct {
	dest  string
	hours int
}

func poolOf(legs ...leg) *Pool {
	routes := make([]domain.Route, 0, len(legs))
	for _, l := range legs {
		routes = append(routes, domain.Route{
			Destination:   l.dest,
			DutyTime:      domain.Hours(l.hours),
			RemainingUses: 1,
		})
	}
	return NewPool(routes)
}

func budgetHours(h int) SearchOptions { return SearchOptions{Budget: domain.Hours(h)} }

func TestFindCircuitExactSum(t *testing.T) {
	pool := poolOf(leg{"C", 3}, leg{"A", 10}, leg{"B", 5})

	res, err := FindCircuit(context.Background(), pool, budgetHours(18))
	require.NoError(t, err)
	require.True(t, res.Found)

	circuit := domain.Circuit{Legs: res.Legs}
	assert.Equal(t, []string{"A", "B", "C"}, circuit.Destinations())
	assert.Equal(t, domain.Hours(18), circuit.DutySum())
	for i := range pool.Len() {
		assert.Equal(t, 1, pool.Used(i))
	}
}

func TestFindCircuitSingleLegFillsBudget(t *testing.T) {
	pool := poolOf(leg{"LAX", 168}, leg{"JFK", 20})

	res, err := FindCircuit(context.Background(), pool, SearchOptions{})
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []domain.Leg{{Destination: "LAX", DutyTime: domain.WeeklyBudget}}, res.Legs)
}

func TestFindCircuitBacktracksAndRejects(t *testing.T) {
	// Longest-first commits A, finds nothing that fits the remaining 7h,
	// backs out, and then succeeds with B+C.
	pool := poolOf(leg{"A", 10}, leg{"B", 9}, leg{"C", 8})
	before := pool.Routes()

	res, err := FindCircuit(context.Background(), pool, budgetHours(17))
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{"B", "C"}, domain.Circuit{Legs: res.Legs}.Destinations())

	after := pool.Routes()
	assert.Equal(t, before[0], after[0], "rejected route A must be released")
	assert.Equal(t, 0, after[1].RemainingUses)
	assert.Equal(t, 0, after[2].RemainingUses)
}

func TestFindCircuitNoExactSumRestoresPool(t *testing.T) {
	pool := poolOf(leg{"A", 10}, leg{"B", 7}, leg{"C", 4})
	before := pool.Routes()

	res, err := FindCircuit(context.Background(), pool, budgetHours(18))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Legs)
	assert.Equal(t, before, pool.Routes())
}

func TestFindCircuitEmptyPool(t *testing.T) {
	res, err := FindCircuit(context.Background(), NewPool(nil), SearchOptions{})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Zero(t, res.Steps)
}

func TestFindCircuitNeverRepeatsDestination(t *testing.T) {
	// Two catalog records for the same destination must not both be used.
	pool := poolOf(leg{"JFK", 9}, leg{"JFK", 9}, leg{"BOS", 6}, leg{"ORD", 3})

	res, err := FindCircuit(context.Background(), pool, budgetHours(18))
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{"JFK", "BOS", "ORD"}, domain.Circuit{Legs: res.Legs}.Destinations())
}

func TestFindCircuitStepLimitRestoresPool(t *testing.T) {
	pool := poolOf(leg{"A", 10}, leg{"B", 9}, leg{"C", 8})
	before := pool.Routes()

	res, err := FindCircuit(context.Background(), pool, SearchOptions{Budget: domain.Hours(17), MaxSteps: 1})
	require.ErrorIs(t, err, ErrSearchLimit)
	assert.False(t, res.Found)
	assert.Equal(t, before, pool.Routes())
}

func TestFindCircuitMaxDepth(t *testing.T) {
	pool := poolOf(leg{"A", 10}, leg{"B", 5}, leg{"C", 3})

	res, err := FindCircuit(context.Background(), pool, SearchOptions{Budget: domain.Hours(18), MaxDepth: 2})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, poolOf(leg{"A", 10}, leg{"B", 5}, leg{"C", 3}).Routes(), pool.Routes())

	res, err = FindCircuit(context.Background(), pool, SearchOptions{Budget: domain.Hours(18), MaxDepth: 3})
	require.NoError(t, err)
	assert.True(t, res.Found)
}

func TestFindCircuitCancelledContextRestoresPool(t *testing.T) {
	pool := poolOf(leg{"A", 10}, leg{"B", 5}, leg{"C", 3})
	before := pool.Routes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := FindCircuit(ctx, pool, budgetHours(18))
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.Found)
	assert.Equal(t, before, pool.Routes())
}

// Randomized pools: every accepted circuit sums exactly to the budget with
// distinct destinations, and a failed search leaves the pool untouched.
func TestFindCircuitProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := range 200 {
		n := 1 + rng.Intn(14)
		routes := make([]domain.Route, 0, n)
		for range n {
			routes = append(routes, domain.Route{
				Destination:   fmt.Sprintf("D%d", rng.Intn(n+1)),
				DutyTime:      domain.TurnaroundAllowance + domain.DutyTime(rng.Intn(120)),
				RemainingUses: 1,
			})
		}
		pool := NewPool(routes)
		before := pool.Routes()
		budget := domain.DutyTime(40 + rng.Intn(300))

		res, err := FindCircuit(context.Background(), pool, SearchOptions{Budget: budget})
		require.NoError(t, err)

		if !res.Found {
			assert.Equal(t, before, pool.Routes(), "trial %d", trial)
			continue
		}

		circuit := domain.Circuit{Legs: res.Legs}
		assert.Equal(t, budget, circuit.DutySum(), "trial %d", trial)

		seen := map[string]bool{}
		for _, d := range circuit.Destinations() {
			assert.False(t, seen[d], "trial %d: repeated %s", trial, d)
			seen[d] = true
		}

		used := 0
		for i := range pool.Len() {
			u := pool.Used(i)
			assert.True(t, u == 0 || u == 1, "trial %d: route %d used %d times", trial, i, u)
			used += u
		}
		assert.Equal(t, len(res.Legs), used, "trial %d", trial)
	}
}
