package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fusdle/go-server/internal/httpserver"
	"github.com/fusdle/go-server/internal/puzzle"
	"github.com/fusdle/go-server/internal/results"
	"github.com/fusdle/go-server/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	puzzles, err := puzzle.Load(cfg.PuzzlesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle set")
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	srv := httpserver.New(
		puzzle.NewMemoryRepository(puzzles),
		session.NewStore(),
		results.NewSQLStore(db),
		cfg.ClientOrigin,
	)

	log.Info().Str("port", cfg.Port).Int("puzzles", len(puzzles)).Msg("starting fusdle-go")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
