package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/naijatax/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv loads the dotenv file (-e/-env, or ./.env when present) into the
// process environment and then overlays NAIJATAX_* variables onto cfg.
// Variables already set in the environment win over the dotenv file.
func parseEnv(cfg *Config, args []string) error {
	if err := loadDotenv(flagx.EnvFileFlag(args)); err != nil {
		return err
	}
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}

func loadDotenv(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
