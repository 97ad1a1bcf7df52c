package services

import (
	"circuit-planner-service/internal/domain"
	"context"
	"errors"
)

var (
	// ErrInvalidParameters marks malformed session parameters.
	ErrInvalidParameters = errors.New("invalid session parameters")

	// ErrSearchLimit is returned when a search exceeds SearchOptions.MaxSteps.
	ErrSearchLimit = errors.New("circuit search: step limit reached")
)

// ctxCheckMask sets how often (in search steps) the context is polled.
const ctxCheckMask = 1023

// Limits and target for one circuit search.
type SearchOptions struct {
	// Budget is the exact duty total a circuit must reach. Zero means
	// domain.WeeklyBudget.
	Budget domain.DutyTime
	// MaxDepth caps the number of legs in one circuit. Zero means no cap
	// beyond the natural one: every leg costs at least the turnaround allowance.
	MaxDepth int
	// MaxSteps caps tentative commits per search. Zero means unlimited.
	MaxSteps int
}

func (o SearchOptions) budget() domain.DutyTime {
	if o.Budget <= 0 {
		return domain.WeeklyBudget
	}
	return o.Budget
}

// Outcome of one circuit search.
type SearchResult struct {
	Found bool
	Legs  []domain.Leg
	Steps int
}

// searcher holds the state of one circuit under construction.
// used and rejected are per circuit; the pool is shared across circuits.
type searcher struct {
	ctx       context.Context
	pool      *Pool
	opts      SearchOptions
	remaining domain.DutyTime
	legs      []int
	used      map[string]struct{}
	rejected  map[string]struct{}
	steps     int
}

// FindCircuit searches pool for one set of routes whose duty times sum exactly
// to the budget, with no destination repeated.
//
// The search is depth-first, trying routes longest duty time first, and stops
// at the first exact fit. A route that led nowhere has its destination added to
// a rejection cache so no later branch of this circuit retries it. Routes of an
// accepted circuit keep their decremented RemainingUses; every other tentative
// commit is undone before FindCircuit returns, including when it returns an
// error (ctx cancellation or ErrSearchLimit).
func FindCircuit(ctx context.Context, pool *Pool, opts SearchOptions) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	s := &searcher{
		ctx:       ctx,
		pool:      pool,
		opts:      opts,
		remaining: opts.budget(),
		used:      make(map[string]struct{}),
		rejected:  make(map[string]struct{}),
	}

	found, err := s.search()
	res := SearchResult{Found: found, Steps: s.steps}
	if err != nil {
		return res, err
	}

	if found {
		res.Legs = make([]domain.Leg, 0, len(s.legs))
		for _, i := range s.legs {
			r := pool.routes[i]
			res.Legs = append(res.Legs, domain.Leg{Destination: r.Destination, DutyTime: r.DutyTime})
		}
	}
	return res, nil
}

func (s *searcher) search() (bool, error) {
	for _, i := range s.pool.order {
		r := &s.pool.routes[i]

		if _, ok := s.rejected[r.Destination]; ok {
			continue
		}
		if _, ok := s.used[r.Destination]; ok {
			continue
		}
		if r.RemainingUses <= 0 || r.DutyTime > s.remaining {
			continue
		}

		if err := s.step(); err != nil {
			return false, err
		}

		undo := s.commit(i)
		if s.remaining == 0 {
			return true, nil
		}

		var (
			found bool
			err   error
		)
		if s.opts.MaxDepth <= 0 || len(s.legs) < s.opts.MaxDepth {
			found, err = s.search()
		}
		if found {
			return true, nil
		}

		undo()
		if err != nil {
			return false, err
		}
		s.rejected[r.Destination] = struct{}{}
	}

	return false, nil
}

// commit tentatively adds route i to the circuit and returns the exact inverse.
func (s *searcher) commit(i int) (undo func()) {
	r := &s.pool.routes[i]

	r.RemainingUses--
	s.remaining -= r.DutyTime
	s.legs = append(s.legs, i)
	s.used[r.Destination] = struct{}{}

	return func() {
		delete(s.used, r.Destination)
		s.legs = s.legs[:len(s.legs)-1]
		s.remaining += r.DutyTime
		r.RemainingUses++
	}
}

// step counts a tentative commit, enforcing MaxSteps and polling ctx sparsely.
func (s *searcher) step() error {
	s.steps++
	if s.opts.MaxSteps > 0 && s.steps > s.opts.MaxSteps {
		return ErrSearchLimit
	}
	if s.steps&ctxCheckMask == 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
