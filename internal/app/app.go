// Package app assembles adapters from configuration for the server and CLI
// entry points.
package app

import (
	"circuit-planner-service/internal/adapters/acquisition"
	"circuit-planner-service/internal/adapters/cache"
	"circuit-planner-service/internal/adapters/repositories"
	"circuit-planner-service/internal/config"
	"circuit-planner-service/internal/platform/db"
	"circuit-planner-service/internal/platform/obs"
	"circuit-planner-service/internal/ports"
	"circuit-planner-service/internal/services"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Closer releases what an Open function acquired.
type Closer func()

func noopCloser() {}

// OpenCatalog opens the route catalog selected by cfg.Driver. The sqlite
// driver creates its schema and loads SeedPath on every start; the memory
// driver loads SeedPath only.
func OpenCatalog(ctx context.Context, cfg config.CatalogConfig) (ports.RouteCatalog, Closer, error) {
	log := obs.Logger(ctx)

	switch cfg.Driver {
	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		log.Info("catalog ready", zap.String("driver", cfg.Driver), zap.String("path", cfg.DBPath))
		return repositories.NewSqliteRouteRepository(conn), func() { _ = conn.Close() }, nil

	case config.DriverPostgres:
		conn, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		log.Info("catalog ready", zap.String("driver", cfg.Driver))
		return repositories.NewSQLRouteRepository(conn), func() { _ = conn.Close() }, nil

	case config.DriverMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		log.Info("catalog ready", zap.String("driver", cfg.Driver), zap.String("database", cfg.MongoDatabase))
		closer := func() { _ = client.Disconnect(context.Background()) }
		return repositories.NewMongoRouteRepository(client.Database(cfg.MongoDatabase)), closer, nil

	case config.DriverMemory:
		repo := repositories.NewMemoryRouteRepository()
		if cfg.SeedPath != "" {
			hubs, _, err := repositories.LoadSeed(ctx, cfg.SeedPath)
			if err != nil {
				return nil, nil, fmt.Errorf("open catalog: %w", err)
			}
			for _, h := range hubs {
				repo.AddHub(h.Hub.Name, h.Routes...)
			}
		}
		log.Info("catalog ready", zap.String("driver", cfg.Driver))
		return repo, noopCloser, nil

	default:
		return nil, nil, fmt.Errorf("open catalog: unknown driver %q", cfg.Driver)
	}
}

// OpenExclusions builds the excluded-destination source: a saved network file
// when configured, otherwise the website scraper when credentials are set.
// The result is nil when neither is available. A Redis address adds caching.
func OpenExclusions(ctx context.Context, cfg config.Config) (ports.ExclusionSource, Closer, error) {
	log := obs.Logger(ctx)

	var source ports.ExclusionSource
	switch {
	case cfg.Exclusions.NetworkFile != "":
		source = acquisition.NewFileExclusionSource(cfg.Exclusions.NetworkFile)
		log.Info("excluded destinations from file", zap.String("path", cfg.Exclusions.NetworkFile))
	case cfg.Scraper.Enabled():
		scraper, err := acquisition.NewRodNetworkScraper(acquisition.ScraperConfig{
			BaseURL:     cfg.Scraper.BaseURL,
			ProfilePath: cfg.Scraper.ProfilePath,
			Username:    cfg.Scraper.Username,
			Password:    cfg.Scraper.Password,
			Headless:    cfg.Scraper.Headless,
			Timeout:     cfg.Scraper.Timeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open exclusions: %w", err)
		}
		source = scraper
		log.Info("excluded destinations from website", zap.String("base_url", cfg.Scraper.BaseURL))
	default:
		log.Warn("no exclusion source configured; no destination will be excluded")
		return nil, noopCloser, nil
	}

	if cfg.Exclusions.RedisAddr == "" {
		return source, noopCloser, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Exclusions.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("exclusion cache unreachable at startup", zap.String("addr", cfg.Exclusions.RedisAddr), zap.Error(err))
	}
	cached := acquisition.NewCachingExclusionSource(source, cache.NewRedisExclusionCache(client), cfg.Exclusions.TTL)
	return cached, func() { _ = client.Close() }, nil
}

// SearchOptions maps configured search limits to the engine's options.
func SearchOptions(cfg config.SearchConfig) services.SearchOptions {
	return services.SearchOptions{
		MaxSteps: cfg.MaxSteps,
		MaxDepth: cfg.MaxDepth,
	}
}
