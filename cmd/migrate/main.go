package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/handler/middleware"
	"belizevibes-booking/internal/infra/db"
	"belizevibes-booking/internal/infra/repository"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

// migrate only needs the database and logging settings, so it does not go
// through config.LoadConfig and its payment checks.
type migrateConfig struct {
	DB      config.DBConfig
	Log     config.LogConfig
	Catalog config.CatalogConfig
}

func main() {
	var (
		dir       = flag.String("dir", "migrations", "directory holding the versioned migration files")
		atlasBin  = flag.String("atlas", "atlas", "path to the atlas binary")
		seed      = flag.Bool("seed", false, "upsert the built-in adventure catalog after migrating")
		skipApply = flag.Bool("seed-only", false, "skip migrations and only seed the catalog")
	)
	flag.Parse()

	var cfg migrateConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if !*skipApply {
		if err := applyMigrations(ctx, logger, *dir, *atlasBin, cfg.DB); err != nil {
			logger.Error("Migration failed", "error", err)
			os.Exit(1)
		}
	}

	if *seed || *skipApply {
		if err := seedCatalog(ctx, logger, cfg); err != nil {
			logger.Error("Catalog seed failed", "error", err)
			os.Exit(1)
		}
	}
}

func applyMigrations(ctx context.Context, logger *slog.Logger, dir, atlasBin string, dbCfg config.DBConfig) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), atlasBin)
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: dbCfg.BuildDSN(),
	})
	if err != nil {
		return err
	}

	logger.Info("Migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
	return nil
}

func seedCatalog(ctx context.Context, logger *slog.Logger, cfg migrateConfig) error {
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer cleanup()

	repo := repository.NewAdventureRepository(sqlc.New(), pool)
	n, err := repo.SeedFromCatalog(ctx, adventure.StaticCatalog, cfg.Catalog.Currency)
	if err != nil {
		return err
	}

	logger.Info("Adventure catalog seeded", "adventures", n)
	return nil
}
