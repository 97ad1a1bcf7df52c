package main

import (
	"circuit-planner-service/internal/adapters/repositories"
	"circuit-planner-service/internal/config"
	"circuit-planner-service/internal/platform/db"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool prepares a Postgres route catalog: schema plus hub seed data.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	logger, err := obs.NewLogger(config.Get("LOG_LEVEL", "info"), true)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := obs.WithLogger(context.Background(), logger)

	conn, err := db.OpenPostgres(ctx, databaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/hubs.json")
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		logger.Fatal("prepare catalog", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	logger := obs.Logger(ctx)

	logger.Info("initializing database schema")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	logger.Info("schema ready")

	hubs, _, err := repositories.LoadSeed(ctx, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info("seeding database", zap.String("seed", seedPath), zap.Int("hubs", len(hubs)))
	if err := repositories.SeedPostgres(ctx, conn, hubs); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("seeding complete")

	return nil
}
