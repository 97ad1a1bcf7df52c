package app

import (
	"circuit-planner-service/internal/adapters/acquisition"
	"circuit-planner-service/internal/config"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = `[
  {"hub_name": "Hub CDG - Paris", "routes": [
    {"destination": "JFK", "distance": "5,837 km", "categories": 3}
  ]}
]`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestOpenCatalogSQLite(t *testing.T) {
	cfg := config.CatalogConfig{
		Driver:   config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "app.db"),
		SeedPath: writeFile(t, "hubs.json", seed),
	}

	catalog, closeCatalog, err := OpenCatalog(context.Background(), cfg)
	require.NoError(t, err)
	defer closeCatalog()

	hubs, err := catalog.ListHubs(context.Background())
	require.NoError(t, err)
	require.Len(t, hubs, 1)
	assert.Equal(t, "CDG", hubs[0].Code)

	routes, err := catalog.ListRoutes(context.Background(), "CDG")
	require.NoError(t, err)
	assert.Len(t, routes, 1)
}

func TestOpenCatalogMemory(t *testing.T) {
	cfg := config.CatalogConfig{Driver: config.DriverMemory, SeedPath: writeFile(t, "hubs.json", seed)}

	catalog, closeCatalog, err := OpenCatalog(context.Background(), cfg)
	require.NoError(t, err)
	defer closeCatalog()

	routes, err := catalog.ListRoutes(context.Background(), "CDG")
	require.NoError(t, err)
	assert.Equal(t, "JFK", routes[0].Destination)
}

func TestOpenCatalogErrors(t *testing.T) {
	_, _, err := OpenCatalog(context.Background(), config.CatalogConfig{Driver: "oracle"})
	assert.Error(t, err)

	_, _, err = OpenCatalog(context.Background(), config.CatalogConfig{
		Driver:   config.DriverMemory,
		SeedPath: filepath.Join(t.TempDir(), "missing.json"),
	})
	assert.Error(t, err)
}

func TestOpenExclusionsNone(t *testing.T) {
	source, closeSource, err := OpenExclusions(context.Background(), config.Default())
	require.NoError(t, err)
	defer closeSource()
	assert.Nil(t, source)
}

func TestOpenExclusionsScraper(t *testing.T) {
	cfg := config.Default()
	cfg.Scraper.Username = "pilot"
	cfg.Scraper.Password = "secret"
	cfg.Scraper.ProfilePath = "/company/profile/network/1"

	source, closeSource, err := OpenExclusions(context.Background(), cfg)
	require.NoError(t, err)
	defer closeSource()
	assert.IsType(t, &acquisition.RodNetworkScraper{}, source)
}

func TestOpenExclusionsFileWithCache(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Exclusions.NetworkFile = writeFile(t, "network.json", `[{"airportTwo":{"iata":"JFK"}}]`)
	cfg.Exclusions.RedisAddr = srv.Addr()
	cfg.Exclusions.TTL = time.Minute

	source, closeSource, err := OpenExclusions(context.Background(), cfg)
	require.NoError(t, err)
	defer closeSource()
	require.IsType(t, &acquisition.CachingExclusionSource{}, source)

	set, err := source.ExcludedDestinations(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, set.Contains("JFK"))

	// The second read is served from Redis even after the file is gone.
	require.NoError(t, os.Remove(cfg.Exclusions.NetworkFile))
	set, err = source.ExcludedDestinations(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, set.Contains("JFK"))
}

func TestSearchOptions(t *testing.T) {
	opts := SearchOptions(config.SearchConfig{MaxSteps: 10, MaxDepth: 3})
	assert.Equal(t, 10, opts.MaxSteps)
	assert.Equal(t, 3, opts.MaxDepth)
}
