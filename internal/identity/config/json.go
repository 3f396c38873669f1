package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursekeeper/internal/flagx"
	"github.com/dmitrijs2005/coursekeeper/internal/timex"
)

// JsonConfig is the JSON file DTO. Only keys present in the file override
// the current Config; durations accept "60m" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDriver              *string         `json:"database_driver"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	Issuer                      *string         `json:"issuer"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	HashAlgorithm               *string         `json:"hash_algorithm"`
	LogBackend                  *string         `json:"log_backend"`
	DebugRoutes                 *bool           `json:"debug_routes"`
}

// parseJson loads the file named by -c/-config, if any, over config.
// It panics if the file cannot be read or is not valid JSON.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Issuer, c.Issuer)
	setString(&config.HashAlgorithm, c.HashAlgorithm)
	setString(&config.LogBackend, c.LogBackend)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.DebugRoutes != nil {
		config.DebugRoutes = *c.DebugRoutes
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
