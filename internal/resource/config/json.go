package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursekeeper/internal/flagx"
	"github.com/dmitrijs2005/coursekeeper/internal/timex"
)

type JsonConfig struct {
	EndpointAddrHTTP       *string         `json:"endpoint_addr_http"`
	DatabaseDriver         *string         `json:"database_driver"`
	DatabaseDSN            *string         `json:"database_dsn"`
	AuthURL                *string         `json:"auth_url"`
	IntrospectionTransport *string         `json:"introspection_transport"`
	IntrospectionAddrGRPC  *string         `json:"introspection_addr_grpc"`
	IntrospectionTimeout   *timex.Duration `json:"introspection_timeout"`
	LogBackend             *string         `json:"log_backend"`
	DebugRoutes            *bool           `json:"debug_routes"`
}

// parseJson loads the file named by -c/-config, if any, over config.
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

	for dst, v := range map[*string]*string{
		&config.EndpointAddrHTTP:       c.EndpointAddrHTTP,
		&config.DatabaseDriver:         c.DatabaseDriver,
		&config.DatabaseDSN:            c.DatabaseDSN,
		&config.AuthURL:                c.AuthURL,
		&config.IntrospectionTransport: c.IntrospectionTransport,
		&config.IntrospectionAddrGRPC:  c.IntrospectionAddrGRPC,
		&config.LogBackend:             c.LogBackend,
	} {
		if v != nil {
			*dst = *v
		}
	}
	if c.IntrospectionTimeout != nil {
		config.IntrospectionTimeout = c.IntrospectionTimeout.Duration
	}
	if c.DebugRoutes != nil {
		config.DebugRoutes = *c.DebugRoutes
	}
}
