package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/planfold/planfold/internal/timex"
)

// parseEnv overlays configuration from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over .env entries (godotenv does not override existing ones).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := timex.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("PLANFOLD_ADDRESS", &cfg.EndpointAddr)
	setString("PLANFOLD_DATA_DIR", &cfg.DataDir)
	setString("PLANFOLD_DEFAULT_TAG", &cfg.DefaultTag)
	setString("PLANFOLD_SECRET_KEY", &cfg.SecretKey)
	setDuration("PLANFOLD_ACCESS_TOKEN_TTL", &cfg.AccessTokenValidityDuration)
	setDuration("PLANFOLD_REFRESH_TOKEN_TTL", &cfg.RefreshTokenValidityDuration)
	setString("PLANFOLD_S3_USER", &cfg.S3RootUser)
	setString("PLANFOLD_S3_PASSWORD", &cfg.S3RootPassword)
	setString("PLANFOLD_S3_BUCKET", &cfg.S3Bucket)
	setString("PLANFOLD_S3_REGION", &cfg.S3Region)
	setString("PLANFOLD_S3_ENDPOINT", &cfg.S3BaseEndpoint)
}
