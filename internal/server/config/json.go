package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/musicvideos/internal/flagx"
	"github.com/dmitrijs2005/musicvideos/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// "24h" style strings or integer nanoseconds. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	DevModeSecret           *bool           `json:"dev_mode_secret"`
	TokenValidityDuration   *timex.Duration `json:"token_validity_duration"`
	HashAlgorithm           *string         `json:"hash_algorithm"`
	PBKDF2Rounds            *int            `json:"pbkdf2_rounds"`
	BcryptCost              *int            `json:"bcrypt_cost"`
	RevocationPruneInterval *timex.Duration `json:"revocation_prune_interval"`
	LogLevel                *string         `json:"log_level"`
}

// parseJson loads the file given by -c/-config, if any, onto config. An
// unreadable or invalid file panics.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.DevModeSecret, c.DevModeSecret)
	setIf(&config.HashAlgorithm, c.HashAlgorithm)
	setIf(&config.PBKDF2Rounds, c.PBKDF2Rounds)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RevocationPruneInterval != nil {
		config.RevocationPruneInterval = c.RevocationPruneInterval.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
