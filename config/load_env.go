package config

import (
	"log/slog"
	"os"

	"github.com/subosito/gotenv"
)

const EnvDir = "config/envs"

// AppEnv returns APP_ENV, defaulting to "dev".
func AppEnv() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	return env
}

// LoadEnv loads config/envs/.env.<env> into the process environment without
// overriding variables that are already set.
func LoadEnv(env string) {
	envFile := EnvDir + "/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}
