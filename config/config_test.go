package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for key := range defaults {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 600, cfg.RateLimitPerMin)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "room_booking", cfg.Database.Name)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Database.Seed)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 60, cfg.Redis.CacheTTLSeconds)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/rooms.db")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DB_SEED", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "0")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/rooms.db", cfg.Database.SQLitePath)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Database.Seed)
	assert.Zero(t, cfg.RateLimitPerMin)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "API_PREFIX: /v2\nCACHE_TTL_SECONDS: 15\nCORS_ORIGINS: https://a.example, https://b.example\nDB_NAME: from_file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("DB_NAME", "from_env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/v2", cfg.APIPrefix)
	assert.Equal(t, 15, cfg.Redis.CacheTTLSeconds)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestLoad_BrokenConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("PORT: [unterminated"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	cases := map[string][]string{
		"":                               {"*"},
		" , ,":                           {"*"},
		"*":                              {"*"},
		"http://localhost:3000":          {"http://localhost:3000"},
		" http://a.test ,http://b.test,": {"http://a.test", "http://b.test"},
	}
	for raw, want := range cases {
		cfg := Config{CORSOrigins: raw}
		assert.Equal(t, want, cfg.AllowedOrigins(), raw)
	}
}
