package repositories

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLRouteRepository is a Postgres-backed RouteCatalog (pgx stdlib driver).
type SQLRouteRepository struct {
	DB *sql.DB
}

func NewSQLRouteRepository(db *sql.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: db}
}

func (s *SQLRouteRepository) ListHubs(ctx context.Context) (_ []domain.Hub, err error) {
	defer obs.Time(ctx, "postgres.ListHubs")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route repository: db is nil")
	}

	q := `
	SELECT hub_code, hub_name
	FROM hubs
	ORDER BY hub_code;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list hubs: query hubs table: %w", err)
	}
	defer rows.Close()

	return scanHubs(rows)
}

func (s *SQLRouteRepository) ListRoutes(ctx context.Context, hubCode string) (_ []domain.RawRoute, err error) {
	defer obs.Time(ctx, "postgres.ListRoutes")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route repository: db is nil")
	}

	if strings.TrimSpace(hubCode) == "" {
		return nil, errors.New("list routes: hub code must not be empty")
	}

	q := `
	SELECT destination, distance, categories
	FROM hub_routes
	WHERE hub_code = $1
	ORDER BY destination;
	`

	rows, err := s.DB.QueryContext(ctx, q, hubCode)
	if err != nil {
		return nil, fmt.Errorf("list routes: query hub_routes table: %w", err)
	}
	defer rows.Close()

	return scanRoutes(rows)
}
