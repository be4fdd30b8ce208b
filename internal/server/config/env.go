package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/dmitrijs2005/musicvideos/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvSecretKey     = "SECRET_KEY"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvDevModeSecret = "DEV_MODE_SECRET"
	EnvGRPCAddress   = "GRPC_ADDRESS"
	EnvLogLevel      = "LOG_LEVEL"
)

const defaultEnvFile = ".env"

// loadDotEnv loads the file named by -env, or ./.env when the flag is absent.
// Variables already present in the environment are not overridden. A missing
// default file is fine; a missing explicit file panics.
func loadDotEnv() {
	path := flagx.EnvFileFlag(os.Args[1:])
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return
		}
		panic(fmt.Errorf("loading %s: %w", path, err))
	}
}

// parseEnv overlays non-empty environment variables onto config.
func parseEnv(config *Config) {
	if v := os.Getenv(EnvSecretKey); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv(EnvGRPCAddress); v != "" {
		config.EndpointAddrGRPC = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(EnvDevModeSecret); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvDevModeSecret, err))
		}
		config.DevModeSecret = dev
	}
}
