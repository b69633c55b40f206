// config.go
//
// Runtime configuration, parsed from environment variables. godotenv loads
// a local .env first (main.go), so development needs no exported shell vars.

package main

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

type config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	DBPath       string `env:"DB_PATH" envDefault:"./data/fusdle.db"`
	PuzzlesFile  string `env:"PUZZLES_FILE"` // empty → embedded default set
}

func loadConfig() (config, error) {
	var c config
	if err := env.Parse(&c); err != nil {
		return config{}, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}
