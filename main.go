package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bensuskins/grocery-engine/internal/config"
	"github.com/bensuskins/grocery-engine/internal/database"
	"github.com/bensuskins/grocery-engine/internal/repository"
	"github.com/bensuskins/grocery-engine/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("migrating database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	measurementRepo := repository.NewMeasurementRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	if cfg.SeedOnStart {
		if err := seed.Run(ctx, measurementRepo, ingredientRepo, assignmentRepo); err != nil {
			slog.Error("seeding catalogs", "error", err)
			os.Exit(1)
		}
	}

	measurementCount, err := measurementRepo.Count(ctx)
	if err != nil {
		slog.Error("counting measurements", "error", err)
		os.Exit(1)
	}
	ingredientCount, err := ingredientRepo.Count(ctx)
	if err != nil {
		slog.Error("counting ingredients", "error", err)
		os.Exit(1)
	}
	categoryCount, err := assignmentRepo.CountCategories(ctx)
	if err != nil {
		slog.Error("counting categories", "error", err)
		os.Exit(1)
	}

	slog.Info("catalog ready",
		"database", cfg.DatabasePath,
		"measurements", measurementCount,
		"ingredients", ingredientCount,
		"categories", categoryCount,
	)
}
