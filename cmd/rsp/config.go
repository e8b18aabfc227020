package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config carries environment defaults for flag values. Flags override.
type config struct {
	Workers   int           `env:"RSP_WORKERS" envDefault:"0"`
	Overlap   int           `env:"RSP_OVERLAP" envDefault:"64"`
	Timeout   time.Duration `env:"RSP_TIMEOUT" envDefault:"10s"`
	UserAgent string        `env:"RSP_USER_AGENT" envDefault:"robosat-pink/1.0"`
	Palette   string        `env:"RSP_PALETTE" envDefault:"white,deeppink"`
}

// loadConfig reads .env when present, then the RSP_* environment.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, err
	}
	return env.ParseAs[config]()
}
