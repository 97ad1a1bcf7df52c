package repositories

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

type RouteSeed struct {
	Destination string `json:"destination"`
	Distance    string `json:"distance"`
	Categories  int    `json:"categories"`
}

type HubSeed struct {
	HubName string      `json:"hub_name"`
	Routes  []RouteSeed `json:"routes"`
}

// A validated hub ready to be written to a catalog.
type SeededHub struct {
	Hub    domain.Hub
	Routes []domain.RawRoute
}

// Records LoadSeed dropped because they cannot be keyed.
type SeedSkips struct {
	Hubs   int
	Routes int
}

// LoadSeed reads a hub catalog seed file. Hubs whose name yields no hub code
// and routes with an empty destination are skipped and counted, matching how
// the other catalogs treat unmappable records.
func LoadSeed(ctx context.Context, jsonPath string) ([]SeededHub, SeedSkips, error) {
	var skips SeedSkips

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, skips, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var data []HubSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, skips, fmt.Errorf("load seed: parse json: %w", err)
	}

	out := make([]SeededHub, 0, len(data))
	for _, item := range data {
		name := strings.TrimSpace(item.HubName)
		code, ok := domain.ExtractHubCode(name)
		if !ok {
			skips.Hubs++
			continue
		}

		routes := make([]domain.RawRoute, 0, len(item.Routes))
		for _, r := range item.Routes {
			dest := domain.NormalizeDestination(r.Destination)
			if dest == "" {
				skips.Routes++
				continue
			}
			routes = append(routes, domain.RawRoute{
				Destination: dest,
				Distance:    strings.TrimSpace(r.Distance),
				Categories:  r.Categories,
			})
		}

		out = append(out, SeededHub{
			Hub:    domain.Hub{Code: code, Name: name},
			Routes: routes,
		})
	}

	if skips.Hubs > 0 || skips.Routes > 0 {
		obs.Logger(ctx).Warn("seed records skipped",
			zap.String("seed", jsonPath),
			zap.Int("hubs", skips.Hubs),
			zap.Int("routes", skips.Routes),
		)
	}

	return out, skips, nil
}
