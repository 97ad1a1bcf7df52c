package services

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrHubNotFound = errors.New("hub not found")

// ResolveHub matches user input against the catalog's hubs. The input may be a
// hub code ("CDG", any case), a full hub name, or a name a code can be
// extracted from.
func ResolveHub(ctx context.Context, catalog ports.RouteCatalog, input string) (domain.Hub, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return domain.Hub{}, fmt.Errorf("resolve hub: hub is required: %w", ErrInvalidParameters)
	}

	hubs, err := catalog.ListHubs(ctx)
	if err != nil {
		return domain.Hub{}, fmt.Errorf("resolve hub: list hubs: %w", err)
	}

	for _, h := range hubs {
		if strings.EqualFold(h.Code, in) || h.Name == in {
			return h, nil
		}
	}

	if code, ok := domain.ExtractHubCode(in); ok {
		for _, h := range hubs {
			if h.Code == code {
				return h, nil
			}
		}
	}

	return domain.Hub{}, fmt.Errorf("resolve hub %q: %w", in, ErrHubNotFound)
}
