package ports

import (
	"circuit-planner-service/internal/domain"
	"context"
)

// Port: a read-only keyed catalog of hubs and their scraped route records.
type RouteCatalog interface {
	// Retrieve every hub with a usable code.
	ListHubs(ctx context.Context) ([]domain.Hub, error)
	// Retrieve the raw route records stored for one hub code.
	ListRoutes(ctx context.Context, hubCode string) ([]domain.RawRoute, error)
}
