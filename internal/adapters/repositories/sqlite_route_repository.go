package repositories

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the RouteCatalog port.
type SqliteRouteRepository struct{ DB *sql.DB }

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

// Return every hub stored in the catalog.
func (s *SqliteRouteRepository) ListHubs(ctx context.Context) (_ []domain.Hub, err error) {
	defer obs.Time(ctx, "sqlite.ListHubs")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	SELECT
		hub_code,
		hub_name
	FROM hubs
	ORDER BY hub_code;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hubs: query hubs table: %w", err)
	}
	defer rows.Close()

	return scanHubs(rows)
}

// Return the raw routes stored for one hub.
func (s *SqliteRouteRepository) ListRoutes(ctx context.Context, hubCode string) (_ []domain.RawRoute, err error) {
	defer obs.Time(ctx, "sqlite.ListRoutes")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	SELECT
		destination,
		distance,
		categories
	FROM hub_routes
	WHERE hub_code = ?
	ORDER BY destination;
	`
	rows, err := s.DB.QueryContext(ctx, query, hubCode)
	if err != nil {
		return nil, fmt.Errorf("list routes: query hub_routes table: %w", err)
	}
	defer rows.Close()

	return scanRoutes(rows)
}

func scanHubs(rows *sql.Rows) ([]domain.Hub, error) {
	hubs := make([]domain.Hub, 0, 16)
	for rows.Next() {
		var h domain.Hub
		if err := rows.Scan(&h.Code, &h.Name); err != nil {
			return nil, fmt.Errorf("list hubs: scan row: %w", err)
		}
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hubs: row iteration: %w", err)
	}
	return hubs, nil
}

func scanRoutes(rows *sql.Rows) ([]domain.RawRoute, error) {
	routes := make([]domain.RawRoute, 0, 64)
	for rows.Next() {
		var r domain.RawRoute
		if err := rows.Scan(&r.Destination, &r.Distance, &r.Categories); err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}
	return routes, nil
}
