package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string   HTTP bind address
//	-g string   gRPC introspection bind address ("" disables)
//	-D string   database driver (pgx|sqlite)
//	-d string   database DSN
//	-s string   HMAC secret key
//	-t int      access token validity, minutes
//	-H string   hash algorithm (sha256|argon2id)
//	-l string   log backend (slog|zap)
//	-debug      mount diagnostic routes
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-D", "-d", "-s", "-t", "-H", "-l", "-debug"})

	fs := flag.NewFlagSet("identity", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC introspection address and port")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.HashAlgorithm, "H", config.HashAlgorithm, "password hash algorithm (sha256|argon2id)")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")
	fs.BoolVar(&config.DebugRoutes, "debug", config.DebugRoutes, "mount diagnostic routes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*validity) * time.Minute
		}
	})
}
