package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
read_timeout = 5
write_timeout = 5

[database]
host = "db"
port = 5433
user = "studio"
dbname = "ink"

[auth]
jwt_secret = "from-file"

[notifications]
default_channel = "whatsapp"
whatsapp_number = "+306900000000"

[studio]
timezone = "Europe/Madrid"
`)
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "whatsapp", cfg.Notifications.DefaultChannel)
	assert.Equal(t, "Europe/Madrid", cfg.Studio.Location().String())
	assert.Equal(t, 10, cfg.Relay.Timeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "only-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "telegram", cfg.Notifications.DefaultChannel)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = ""

[notifications]
default_channel = "pigeon"
daily_summary_hour = 30

[rate_limit]
trusted_proxies = ["10.0.0.0/8", "proxy.local"]
`)
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "jwt_secret")
	assert.Contains(t, err.Error(), "default_channel")
	assert.Contains(t, err.Error(), "daily_summary_hour")
	assert.Contains(t, err.Error(), `"proxy.local"`)
	assert.NotContains(t, err.Error(), `"10.0.0.0/8"`)
}

func TestLoad_BrokenTOML(t *testing.T) {
	path := writeConfig(t, "[server\nhttp_port = ")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestStudioLocation_Fallback(t *testing.T) {
	assert.Equal(t, "UTC", StudioConfig{Timezone: "Mars/Olympus"}.Location().String())
}
