package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-dev        accept the development secret when none is configured
//	-t int      token validity, minutes
//	-alg string password hashing algorithm (pbkdf2-sha256, bcrypt, argon2id)
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so that -c and -env, which
// belong to other loaders, do not make parsing fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-dev", "-t", "-alg", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.BoolVar(&config.DevModeSecret, "dev", config.DevModeSecret, "use the insecure development secret if none is configured")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.HashAlgorithm, "alg", config.HashAlgorithm, "password hashing algorithm")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is applied only when given, so a sub-minute validity from the
	// environment or JSON file survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
