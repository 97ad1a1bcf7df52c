package services

import (
	"circuit-planner-service/internal/domain"
	"context"
	"errors"
	"fmt"
)

// SetStatus classifies the outcome of building a circuit set.
type SetStatus string

const (
	StatusComplete      SetStatus = "complete"
	StatusPartial       SetStatus = "partial"
	StatusNoCircuits    SetStatus = "no_circuits"
	StatusNoValidRoutes SetStatus = "no_valid_routes"
	// StatusTruncated means the step limit stopped the search before any
	// circuit was built; a circuit may still exist.
	StatusTruncated SetStatus = "truncated"
)

// The circuits built for one session, in build order.
type CircuitSet struct {
	Circuits  []domain.Circuit
	Requested int
	Budget    domain.DutyTime
	PoolSize  int
	Steps     int
	// Truncated is set when a search hit SearchOptions.MaxSteps; circuits built
	// before that point are kept.
	Truncated bool
}

// Status distinguishes an empty candidate pool from a search that could not
// build any, some, or all of the requested circuits. A search cut off by the
// step limit before its first circuit reports StatusTruncated, not
// StatusNoCircuits.
func (s CircuitSet) Status() SetStatus {
	switch {
	case s.PoolSize == 0:
		return StatusNoValidRoutes
	case len(s.Circuits) == 0 && s.Truncated:
		return StatusTruncated
	case len(s.Circuits) == 0:
		return StatusNoCircuits
	case len(s.Circuits) < s.Requested:
		return StatusPartial
	default:
		return StatusComplete
	}
}

// BuildCircuits runs FindCircuit up to n times against the same pool, so routes
// used by one circuit are unavailable to the next. It stops at the first search
// that finds nothing; the circuits built so far are returned without error.
//
// Each circuit reports the fixed budget as its total.
func BuildCircuits(ctx context.Context, pool *Pool, n int, opts SearchOptions) (CircuitSet, error) {
	set := CircuitSet{
		Requested: n,
		Budget:    opts.budget(),
		PoolSize:  pool.Len(),
	}

	if n < 1 {
		return set, fmt.Errorf("build circuits: count must be at least 1, got %d: %w", n, ErrInvalidParameters)
	}

	for number := 1; number <= n; number++ {
		res, err := FindCircuit(ctx, pool, opts)
		set.Steps += res.Steps
		if errors.Is(err, ErrSearchLimit) {
			set.Truncated = true
			break
		}
		if err != nil {
			return set, fmt.Errorf("build circuits: circuit %d: %w", number, err)
		}
		if !res.Found {
			break
		}

		set.Circuits = append(set.Circuits, domain.Circuit{
			Number: number,
			Legs:   res.Legs,
			Budget: set.Budget,
		})
	}

	return set, nil
}
