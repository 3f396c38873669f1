package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/coursekeeper/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string   HTTP bind address
//	-D string   database driver (pgx|sqlite)
//	-d string   database DSN
//	-u string   identity service base URL
//	-T string   introspection transport (http|grpc)
//	-g string   identity gRPC address
//	-w duration introspection timeout
//	-l string   log backend (slog|zap)
//	-debug      mount diagnostic routes
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-D", "-d", "-u", "-T", "-g", "-w", "-l", "-debug"})

	fs := flag.NewFlagSet("resource", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AuthURL, "u", config.AuthURL, "identity service URL")
	fs.StringVar(&config.IntrospectionTransport, "T", config.IntrospectionTransport, "introspection transport (http|grpc)")
	fs.StringVar(&config.IntrospectionAddrGRPC, "g", config.IntrospectionAddrGRPC, "identity gRPC address")
	fs.DurationVar(&config.IntrospectionTimeout, "w", config.IntrospectionTimeout, "introspection timeout")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")
	fs.BoolVar(&config.DebugRoutes, "debug", config.DebugRoutes, "mount diagnostic routes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
