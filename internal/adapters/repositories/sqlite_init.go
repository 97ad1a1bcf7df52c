package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite catalog schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHubsQuery := `
	CREATE TABLE IF NOT EXISTS hubs (
		hub_code TEXT PRIMARY KEY,
		hub_name TEXT NOT NULL
	);
	`

	createHubRoutesQuery := `
	CREATE TABLE IF NOT EXISTS hub_routes (
        hub_code TEXT NOT NULL REFERENCES hubs(hub_code),
        destination TEXT NOT NULL,
        distance TEXT NOT NULL,
        categories INTEGER NOT NULL DEFAULT 0,
        PRIMARY KEY (hub_code, destination)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_hub_routes_destination
    ON hub_routes(destination);
	`

	statements := []string{
		createHubsQuery,
		createHubRoutesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the SQLite catalog with hub and route data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	hubs, _, err := LoadSeed(ctx, jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer tx.Rollback()

	hubStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO hubs (
		hub_code,
		hub_name
	)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare hub insert: %w", err)
	}
	defer hubStmt.Close()

	routeStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO hub_routes (
		hub_code,
		destination,
		distance,
		categories
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare route insert: %w", err)
	}
	defer routeStmt.Close()

	for _, h := range hubs {
		if _, err := hubStmt.Exec(h.Hub.Code, h.Hub.Name); err != nil {
			return fmt.Errorf("seed catalog: insert hub %s: %w", h.Hub.Code, err)
		}
		for _, r := range h.Routes {
			if _, err := routeStmt.Exec(h.Hub.Code, r.Destination, r.Distance, r.Categories); err != nil {
				return fmt.Errorf("seed catalog: insert route %s->%s: %w", h.Hub.Code, r.Destination, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
