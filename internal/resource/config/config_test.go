package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()
	assert.Equal(t, "127.0.0.1:5006", c.EndpointAddrHTTP)
	assert.Equal(t, "http://localhost:5005", c.AuthURL)
	assert.Equal(t, TransportHTTP, c.IntrospectionTransport)
	assert.Equal(t, 5*time.Second, c.IntrospectionTimeout)
	assert.False(t, c.DebugRoutes)
}

func TestLoadConfig_Layering(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTH_URL=http://auth:5005\nINTROSPECTION_TIMEOUT=2s\n"), 0o600))
	cfgPath := filepath.Join(dir, "resource.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"introspection_transport":"grpc","introspection_timeout":"3s","debug_routes":true}`), 0o600))

	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "data/tables.db")

	os.Args = []string{"resource", "-c", cfgPath, "-g", "auth:50051", "-a", ":7000"}
	c := LoadConfig()
	t.Cleanup(func() { _ = os.Unsetenv("AUTH_URL"); _ = os.Unsetenv("INTROSPECTION_TIMEOUT") })

	want := &Config{
		EndpointAddrHTTP:       ":7000",
		DatabaseDriver:         "sqlite",
		DatabaseDSN:            "data/tables.db",
		AuthURL:                "http://auth:5005",
		IntrospectionTransport: TransportGRPC,
		IntrospectionAddrGRPC:  "auth:50051",
		IntrospectionTimeout:   3 * time.Second,
		LogBackend:             "slog",
		DebugRoutes:            true,
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_Timeout(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"resource", "-w", "750ms", "-T", "grpc", "-debug"}
	c := defaults()
	parseFlags(c)

	assert.Equal(t, 750*time.Millisecond, c.IntrospectionTimeout)
	assert.Equal(t, TransportGRPC, c.IntrospectionTransport)
	assert.True(t, c.DebugRoutes)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"resource", "-c", filepath.Join(t.TempDir(), "absent.json")}
	assert.Panics(t, func() { parseJson(defaults()) })
}
