package app

import (
	"circuit-planner-service/internal/adapters/repositories"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	obs.Logger(ctx).Info("catalog seeded", zap.String("seed", seedPath))

	return nil
}
