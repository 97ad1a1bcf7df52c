package repositories

import (
	"circuit-planner-service/internal/domain"
	"context"
	"slices"
	"strings"
	"sync"
)

// In-process RouteCatalog used by tests and the "memory" catalog driver.
type MemoryRouteRepository struct {
	mu     sync.RWMutex
	hubs   map[string]domain.Hub
	routes map[string][]domain.RawRoute
}

func NewMemoryRouteRepository() *MemoryRouteRepository {
	return &MemoryRouteRepository{
		hubs:   make(map[string]domain.Hub),
		routes: make(map[string][]domain.RawRoute),
	}
}

// AddHub registers a hub by name and appends its routes. Names without an
// extractable code are ignored, matching the other catalogs.
func (m *MemoryRouteRepository) AddHub(name string, routes ...domain.RawRoute) {
	code, ok := domain.ExtractHubCode(name)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.hubs[code] = domain.Hub{Code: code, Name: strings.TrimSpace(name)}
	m.routes[code] = append(m.routes[code], routes...)
}

func (m *MemoryRouteRepository) ListHubs(ctx context.Context) ([]domain.Hub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Hub, 0, len(m.hubs))
	for _, h := range m.hubs {
		out = append(out, h)
	}
	slices.SortFunc(out, func(a, b domain.Hub) int { return strings.Compare(a.Code, b.Code) })
	return out, nil
}

func (m *MemoryRouteRepository) ListRoutes(ctx context.Context, hubCode string) ([]domain.RawRoute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.routes[hubCode]), nil
}
