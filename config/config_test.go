package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, ModeDebug, cfg.Mode)
	require.Equal(t, int64(365*24*60*60), cfg.JWT.AccessExpire)
	require.Equal(t, "token", cfg.Auth.CookieName)
	require.Contains(t, cfg.Auth.AllowOrigins, "http://localhost:3000")
	require.False(t, cfg.Redis.Enabled())
	require.False(t, cfg.S3.Enabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	yaml := `
port: "9000"
mode: release
database:
  driver: postgres
  host: db.internal
redis:
  host: cache.internal
jwt:
  access_secret: from-file
`
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))
	t.Setenv("APP_JWT_ACCESS_SECRET", "from-env")

	cfg, err := Load(file)
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, ModeRelease, cfg.Mode)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, "from-env", cfg.JWT.AccessSecret)
	// 文件里没写的字段保持默认
	require.Equal(t, "api", cfg.Prefix)
}
