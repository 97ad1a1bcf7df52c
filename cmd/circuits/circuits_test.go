package main

import (
	"bytes"
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/services"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlan(t *testing.T) {
	plan := &services.CircuitPlan{
		CircuitSet: services.CircuitSet{
			Requested: 3,
			Budget:    domain.WeeklyBudget,
			PoolSize:  5,
			Circuits: []domain.Circuit{
				{Number: 1, Budget: domain.WeeklyBudget, Legs: []domain.Leg{
					{Destination: "JFK", DutyTime: domain.Hours(100)},
					{Destination: "LHR", DutyTime: domain.Hours(68)},
				}},
				{Number: 2, Budget: domain.WeeklyBudget, Legs: []domain.Leg{
					{Destination: "SIN", DutyTime: domain.Hours(168)},
				}},
			},
		},
	}

	var buf bytes.Buffer
	renderPlan(&buf, plan)

	assert.Equal(t, `Circuit 1 Details:
JFK, LHR
Total Flight Time for Circuit 1: 168 hours

Circuit 2 Details:
SIN
Total Flight Time for Circuit 2: 168 hours

Only 2 of 3 requested circuits could be built.
`, buf.String())
}

func TestRenderPlanNoValidRoutes(t *testing.T) {
	var buf bytes.Buffer
	renderPlan(&buf, &services.CircuitPlan{CircuitSet: services.CircuitSet{Requested: 1}})
	assert.Equal(t, "No valid routes available for the given criteria.\n", buf.String())
}

func TestRenderPlanNoCircuits(t *testing.T) {
	var buf bytes.Buffer
	renderPlan(&buf, &services.CircuitPlan{CircuitSet: services.CircuitSet{
		Requested: 1, PoolSize: 2, Budget: domain.WeeklyBudget,
	}})
	assert.Equal(t, "No circuit adds up to exactly 168 hours with the available routes.\n", buf.String())
}

func TestRenderPlanTruncatedBeforeFirstCircuit(t *testing.T) {
	var buf bytes.Buffer
	renderPlan(&buf, &services.CircuitPlan{CircuitSet: services.CircuitSet{
		Requested: 1, PoolSize: 3, Budget: domain.WeeklyBudget, Truncated: true,
	}})
	assert.Equal(t, "The search stopped at its step limit before building a circuit; raise the limit to search further.\n", buf.String())
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "168", formatHours(domain.WeeklyBudget))
	assert.Equal(t, "7.25", formatHours(domain.DutyTime(29)))
}

func TestSessionAnswersRequest(t *testing.T) {
	req, err := sessionAnswers{hub: "CDG", class: "3", speed: " 850", rng: "9000", count: "2"}.request()
	require.NoError(t, err)
	assert.Equal(t, services.PlanCircuitsRequest{
		Hub: "CDG", ClassTier: 3, Speed: 850, MaxRange: 9000, Count: 2,
	}, req)

	_, err = sessionAnswers{hub: "CDG", class: "x", speed: "1", rng: "1", count: "1"}.request()
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, nonNegativeInt("0"))
	assert.Error(t, nonNegativeInt("-1"))
	assert.Error(t, positiveInt("0"))
	assert.NoError(t, positiveInt("900"))
	assert.Error(t, circuitCount("51"))
	assert.NoError(t, circuitCount("50"))
	assert.Error(t, circuitCount("two"))
}

func TestPlanCommand(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "hubs.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
  {"hub_name": "Hub CDG - Paris", "routes": [
    {"destination": "JFK", "distance": "20,000 km", "categories": 1},
    {"destination": "LAX", "distance": "20,000 km", "categories": 1},
    {"destination": "SIN", "distance": "20,000 km", "categories": 1},
    {"destination": "HND", "distance": "20,000 km", "categories": 1}
  ]}
]`), 0o600))

	t.Setenv("CIRCUITS_CONFIG", "")
	t.Setenv("CATALOG_DRIVER", "memory")
	t.Setenv("SEED_PATH", seed)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{
		"plan", "--hub", "CDG", "--class", "1", "--speed", "1000", "--range", "20000",
		"--count", "2", "--no-exclusions",
	})

	require.NoError(t, root.Execute())
	assert.Equal(t, `Circuit 1 Details:
HND, JFK, LAX, SIN
Total Flight Time for Circuit 1: 168 hours

Only 1 of 2 requested circuits could be built.
`, out.String())
}

func TestPlanCommandRequiresHub(t *testing.T) {
	t.Setenv("CATALOG_DRIVER", "memory")
	t.Setenv("SEED_PATH", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"plan", "--speed", "900", "--range", "100"})
	assert.Error(t, root.Execute())
}
