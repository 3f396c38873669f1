package config

import "github.com/dmitrijs2005/coursekeeper/internal/flagx"

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first; real environment variables win.
//
//	IDENTITY_HTTP_ADDR, IDENTITY_GRPC_ADDR, DATABASE_DRIVER, DATABASE_DSN,
//	SECRET_KEY, TOKEN_ISSUER, ACCESS_TOKEN_TTL, HASH_ALGORITHM,
//	LOG_BACKEND, DEBUG_ROUTES
func parseEnv(config *Config) {
	flagx.LoadDotEnv()

	flagx.EnvString(&config.EndpointAddrHTTP, "IDENTITY_HTTP_ADDR")
	flagx.EnvString(&config.EndpointAddrGRPC, "IDENTITY_GRPC_ADDR")
	flagx.EnvString(&config.DatabaseDriver, "DATABASE_DRIVER")
	flagx.EnvString(&config.DatabaseDSN, "DATABASE_DSN")
	flagx.EnvString(&config.SecretKey, "SECRET_KEY")
	flagx.EnvString(&config.Issuer, "TOKEN_ISSUER")
	flagx.EnvDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	flagx.EnvString(&config.HashAlgorithm, "HASH_ALGORITHM")
	flagx.EnvString(&config.LogBackend, "LOG_BACKEND")
	flagx.EnvBool(&config.DebugRoutes, "DEBUG_ROUTES")
}
