package services

import (
	"circuit-planner-service/internal/domain"
	"cmp"
	"slices"
)

// Pool is the shared, depleting set of candidate routes for one planning
// session. Circuit searches mutate RemainingUses in place; a Pool is not safe
// for concurrent use and must not be searched by two callers at once.
type Pool struct {
	routes  []domain.Route
	initial []int
	// order holds route indices by descending duty time (destination, then
	// index, break ties). Duty times never change, so this longest-first order
	// is the same at every recursion level and is computed once.
	order []int
}

// NewPool copies routes into a new pool. Each route's RemainingUses becomes its
// initial allocation.
func NewPool(routes []domain.Route) *Pool {
	p := &Pool{
		routes:  slices.Clone(routes),
		initial: make([]int, len(routes)),
		order:   make([]int, len(routes)),
	}
	for i, r := range p.routes {
		p.initial[i] = r.RemainingUses
		p.order[i] = i
	}

	slices.SortStableFunc(p.order, func(a, b int) int {
		ra, rb := p.routes[a], p.routes[b]
		return cmp.Or(
			cmp.Compare(rb.DutyTime, ra.DutyTime),
			cmp.Compare(ra.Destination, rb.Destination),
			cmp.Compare(a, b),
		)
	})

	return p
}

func (p *Pool) Len() int { return len(p.routes) }

// Routes returns a copy of the pool's current state.
func (p *Pool) Routes() []domain.Route { return slices.Clone(p.routes) }

// Used reports how many times route i has been committed.
func (p *Pool) Used(i int) int { return p.initial[i] - p.routes[i].RemainingUses }

// Available reports whether any route still has uses left.
func (p *Pool) Available() bool {
	for _, r := range p.routes {
		if r.RemainingUses > 0 {
			return true
		}
	}
	return false
}
