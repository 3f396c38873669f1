package config

import "time"

// Config holds runtime settings for the coursekeeper CLI.
//
// Fields:
//   - IdentityURL: base URL of the identity service (register, login, introspect).
//   - ResourceURL: base URL of the resource service (courses, enrollment).
//   - RequestTimeout: upper bound for a single HTTP call.
//   - SessionDir: directory under $HOME holding the local session database.
type Config struct {
	IdentityURL    string
	ResourceURL    string
	RequestTimeout time.Duration
	SessionDir     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.IdentityURL = "http://localhost:5005"
	c.ResourceURL = "http://localhost:5006"
	c.RequestTimeout = 5 * time.Second
	c.SessionDir = ".coursekeeper"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
