// Command seed popula o banco com tutores e pets de demonstração.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/rafabene/ciaopet-backend/internal/infrastructure/config"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/logging"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/seed"
)

func main() {
	fake := flag.Int("fake", 0, "Number of random pets (each with a new tutor) to create after the demo data")
	fakeSeed := flag.Int64("seed", time.Now().UnixNano(), "Seed for the random data generator")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := logging.NewSlogLogger(cfg.Logging.Level)

	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	ctx := context.Background()

	if cfg.Database.RunMigrations {
		if err := postgres.RunMigrations(ctx, db, logger); err != nil {
			logger.Error("failed to run migrations", "error", err)
			log.Fatal(err)
		}
	}

	seeder := seed.NewSeeder(
		postgres.NewUserRepository(db),
		postgres.NewPetRepository(db),
		postgres.NewUnitOfWork(db),
		logger,
	)

	if _, err := seeder.SeedDemo(ctx); err != nil {
		logger.Error("failed to seed demo data", "error", err)
		log.Fatal(err)
	}

	if *fake > 0 {
		if _, err := seeder.SeedFake(ctx, seed.NewFactory(*fakeSeed), *fake); err != nil {
			logger.Error("failed to seed fake data", "error", err)
			log.Fatal(err)
		}
	}

	logger.Info("seeding finished", "demo_password", seed.DemoPassword)
}
