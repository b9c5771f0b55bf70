package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An empty path yields defaults only.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "novaschema", cfg.AppName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8866", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Source.Driver)
	assert.Equal(t, 15*time.Second, cfg.Source.Timeout)
	assert.Empty(t, cfg.Resolver.Aliases)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "novaschema.yaml")
	body := `
app_name: schema-svc
log:
  level: debug
  pretty: true
resolver:
  aliases:
    text: STRING
    int8: BIGINT
server:
  addr: 0.0.0.0:9000
  http_addr: 0.0.0.0:8080
source:
  driver: postgres
  dsn: host=localhost dbname=app
  timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "schema-svc", cfg.AppName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, map[string]string{"text": "STRING", "int8": "BIGINT"}, cfg.Resolver.Aliases)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "postgres", cfg.Source.Driver)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
}

// NOVASCHEMA_* variables override file and defaults.
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("NOVASCHEMA_SERVER_ADDR", "127.0.0.1:7000")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}
