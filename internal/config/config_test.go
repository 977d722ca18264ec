package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRY", "")

	cfg := Load()

	assert.Empty(t, cfg.AppEnv)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 30*24*time.Hour, cfg.SubscriptionPeriod)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, float64(5), cfg.RateLimitRPS)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantErr    bool
		wantSecret string
		wantEnv    string
	}{
		{
			name:       "explicit development fills in a secret",
			cfg:        Config{AppEnv: EnvDevelopment, DBDriver: "sqlite", DBDSN: ":memory:", JWTExpiry: time.Hour},
			wantSecret: DevJWTSecret,
			wantEnv:    EnvDevelopment,
		},
		{
			name:    "unset environment requires a secret",
			cfg:     Config{DBDriver: "sqlite", DBDSN: ":memory:", JWTExpiry: time.Hour},
			wantErr: true,
		},
		{
			name:       "unset environment with a secret runs as development",
			cfg:        Config{DBDriver: "sqlite", DBDSN: ":memory:", JWTSecret: "s3cret", JWTExpiry: time.Hour},
			wantSecret: "s3cret",
			wantEnv:    EnvDevelopment,
		},
		{
			name:    "production requires a secret",
			cfg:     Config{AppEnv: EnvProduction, DBDriver: "mysql", DBDSN: "dsn", JWTExpiry: time.Hour},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{DBDriver: "oracle", DBDSN: "dsn", JWTSecret: "s", JWTExpiry: time.Hour},
			wantErr: true,
		},
		{
			name:    "missing dsn",
			cfg:     Config{DBDriver: "postgres", JWTSecret: "s", JWTExpiry: time.Hour},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSecret, cfg.JWTSecret)
			assert.Equal(t, tt.wantEnv, cfg.AppEnv)
		})
	}
}
