package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults は環境変数が未設定の場合にデフォルト値が使われることを検証します。
func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "APP_ENV", "DB_DRIVER", "PORT", "TOKEN_TTL", "CACHE_TTL", "RUN_MIGRATIONS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "3003", cfg.Port)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.RunMigrations)
}

// TestLoad_FromEnv は環境変数から設定が正しく読み込まれることを検証します。
func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvTest)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://prod")
	t.Setenv("TEST_DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://test", cfg.DSN())
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{DBDriver: "sqlite", TokenTTL: time.Hour}, false},
		{"postgres ok", Config{DBDriver: "postgres", TokenTTL: time.Hour}, false},
		{"unknown driver", Config{DBDriver: "mysql", TokenTTL: time.Hour}, true},
		{"production without secret", Config{Env: EnvProduction, DBDriver: "sqlite", TokenTTL: time.Hour}, true},
		{"production with secret", Config{Env: EnvProduction, DBDriver: "sqlite", JWTSecret: "s", TokenTTL: time.Hour}, false},
		{"zero ttl", Config{DBDriver: "sqlite"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_CORSOrigins(t *testing.T) {
	t.Parallel()

	cfg := Config{CORSAllowedOrigins: " https://a.example, ,https://b.example "}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

// unsetenv はテスト終了時に元の値へ戻しつつ環境変数を削除します。
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
