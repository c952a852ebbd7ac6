package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T) {
	t.Helper()
	orig := os.Args
	os.Args = []string{"test"}
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "default", cfg.DefaultTag)
	assert.Equal(t, 60*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.False(t, cfg.OffsiteBackupEnabled())
}

func TestAuthPath(t *testing.T) {
	cfg := &Config{DataDir: "/var/lib/planfold"}
	assert.Equal(t, filepath.Join("/var/lib/planfold", "auth.json"), cfg.AuthPath())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		c.SecretKey = "0123456789abcdef0123456789abcdef"
		return c
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("short secret", func(t *testing.T) {
		c := valid()
		c.SecretKey = "short"
		assert.Error(t, c.Validate())
	})

	t.Run("missing data dir", func(t *testing.T) {
		c := valid()
		c.DataDir = ""
		assert.Error(t, c.Validate())
	})

	t.Run("non-positive access ttl", func(t *testing.T) {
		c := valid()
		c.AccessTokenValidityDuration = 0
		assert.Error(t, c.Validate())
	})
}

func TestParseEnv_Overrides(t *testing.T) {
	resetArgs(t)
	t.Setenv("PLANFOLD_ADDRESS", ":9999")
	t.Setenv("PLANFOLD_ACCESS_TOKEN_TTL", "30m")
	t.Setenv("PLANFOLD_REFRESH_TOKEN_TTL", "14d")
	t.Setenv("PLANFOLD_S3_ENDPOINT", "http://127.0.0.1:9000/")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 14*24*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.True(t, cfg.OffsiteBackupEnabled())
}

func TestParseJson_OverlaysNonZeroFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr": ":7070",
		"secret_key": "json-secret-0123456789",
		"access_token_validity_duration": "45m",
		"refresh_token_validity_duration": "3d"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"test", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "json-secret-0123456789", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 3*24*time.Hour, cfg.RefreshTokenValidityDuration)
	// untouched fields keep their defaults
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "default", cfg.DefaultTag)
}

func TestParseFlags_Overrides(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"test", "-a", ":6060", "-k", "staging", "-t", "90m", "-r", "30d"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, "staging", cfg.DefaultTag)
	assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenValidityDuration)
}
