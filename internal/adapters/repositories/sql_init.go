package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres catalog schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	schema := `
	CREATE TABLE IF NOT EXISTS hubs (
		hub_code TEXT PRIMARY KEY,
		hub_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hub_routes (
		hub_code    TEXT NOT NULL REFERENCES hubs(hub_code) ON DELETE CASCADE,
		destination TEXT NOT NULL,
		distance    TEXT NOT NULL,
		categories  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (hub_code, destination)
	);

	CREATE INDEX IF NOT EXISTS idx_hub_routes_destination ON hub_routes(destination);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}

	return nil
}

// Populate the Postgres catalog from seeded hubs, upserting existing rows.
func SeedPostgres(ctx context.Context, db *sql.DB, hubs []SeededHub) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed postgres: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	hubStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO hubs (hub_code, hub_name)
	VALUES ($1, $2)
	ON CONFLICT (hub_code) DO UPDATE
	SET hub_name = EXCLUDED.hub_name;
	`)
	if err != nil {
		return fmt.Errorf("seed postgres: prepare hub insert: %w", err)
	}
	defer hubStmt.Close()

	routeStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO hub_routes (hub_code, destination, distance, categories)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (hub_code, destination) DO UPDATE
	SET distance = EXCLUDED.distance,
		categories = EXCLUDED.categories;
	`)
	if err != nil {
		return fmt.Errorf("seed postgres: prepare route insert: %w", err)
	}
	defer routeStmt.Close()

	for _, h := range hubs {
		if _, err := hubStmt.ExecContext(ctx, h.Hub.Code, h.Hub.Name); err != nil {
			return fmt.Errorf("seed postgres: insert hub %s: %w", h.Hub.Code, err)
		}
		for _, r := range h.Routes {
			if _, err := routeStmt.ExecContext(ctx, h.Hub.Code, r.Destination, r.Distance, r.Categories); err != nil {
				return fmt.Errorf("seed postgres: insert route %s->%s: %w", h.Hub.Code, r.Destination, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed postgres: commit: %w", err)
	}

	return nil
}
