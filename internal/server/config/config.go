// Package config handles configuration for the server component, including
// defaults, environment variables, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// MinSecretKeyLength is the minimum accepted length for the JWT signing
// secret. Shorter secrets fail Validate.
const MinSecretKeyLength = 16

// AuthFileName is the fixed file name of the shared auth store inside DataDir.
const AuthFileName = "auth.json"

// Config holds runtime settings for the Planfold server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DataDir: directory holding auth.json, db-{tag}.json files and backups/.
//   - DefaultTag: tag activated at startup.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     optional S3-compatible target for offsite backup copies. Offsite upload
//     is enabled only when S3BaseEndpoint is set.
type Config struct {
	EndpointAddr                 string
	DataDir                      string
	DefaultTag                   string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DataDir = "data"
	c.DefaultTag = "default"
	c.SecretKey = "insecure-dev-secret"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.S3Region = "us-east-1"
}

// AuthPath returns the path of the shared auth store file.
func (c *Config) AuthPath() string {
	return filepath.Join(c.DataDir, AuthFileName)
}

// OffsiteBackupEnabled reports whether backups should also be copied to the
// configured S3-compatible endpoint.
func (c *Config) OffsiteBackupEnabled() bool {
	return c.S3BaseEndpoint != ""
}

// Validate checks invariants the rest of the server relies on.
func (c *Config) Validate() error {
	if len(c.SecretKey) < MinSecretKeyLength {
		return fmt.Errorf("secret key must be at least %d characters", MinSecretKeyLength)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("access token validity must be positive")
	}
	if c.RefreshTokenValidityDuration <= 0 {
		return fmt.Errorf("refresh token validity must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (.env aware), an optional JSON file, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
