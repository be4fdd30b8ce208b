package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. os.Args
// is filtered first so that -c does not make parsing fail.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.SessionDBPath, "db", cfg.SessionDBPath, "local session database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "server availability check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only flags actually given override JSON durations.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
}
