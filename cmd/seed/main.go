package main

import (
	"context"
	"flag"

	"github.com/beginvegan/backend/config"
	"github.com/beginvegan/backend/internal/database"
	"github.com/beginvegan/backend/internal/observability"
	"github.com/beginvegan/backend/internal/seed"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("file", "fixtures/seed.yaml", "YAML fixtures to load")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.NewLogger(string(cfg.Environment), cfg.LogLevel)

	fixtures, err := seed.ParseFile(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read fixtures")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	res, err := seed.Load(context.Background(), db, fixtures)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}
	log.Info().
		Int("admins", res.Admins).
		Int("restaurants", res.Restaurants).
		Int("foods", res.Foods).
		Int("magazines", res.Magazines).
		Msg("seed complete")
}
