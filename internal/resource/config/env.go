package config

import "github.com/dmitrijs2005/coursekeeper/internal/flagx"

// parseEnv overlays Config with environment variables (and a .env file).
//
//	RESOURCE_HTTP_ADDR, DATABASE_DRIVER, DATABASE_DSN, AUTH_URL,
//	INTROSPECTION_TRANSPORT, INTROSPECTION_GRPC_ADDR, INTROSPECTION_TIMEOUT,
//	LOG_BACKEND, DEBUG_ROUTES
func parseEnv(config *Config) {
	flagx.LoadDotEnv()

	flagx.EnvString(&config.EndpointAddrHTTP, "RESOURCE_HTTP_ADDR")
	flagx.EnvString(&config.DatabaseDriver, "DATABASE_DRIVER")
	flagx.EnvString(&config.DatabaseDSN, "DATABASE_DSN")
	flagx.EnvString(&config.AuthURL, "AUTH_URL")
	flagx.EnvString(&config.IntrospectionTransport, "INTROSPECTION_TRANSPORT")
	flagx.EnvString(&config.IntrospectionAddrGRPC, "INTROSPECTION_GRPC_ADDR")
	flagx.EnvDuration(&config.IntrospectionTimeout, "INTROSPECTION_TIMEOUT")
	flagx.EnvString(&config.LogBackend, "LOG_BACKEND")
	flagx.EnvBool(&config.DebugRoutes, "DEBUG_ROUTES")
}
