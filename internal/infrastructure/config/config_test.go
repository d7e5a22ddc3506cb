package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SETTLE_APP_NAME":                os.Getenv("SETTLE_APP_NAME"),
		"SETTLE_APP_ENV":                 os.Getenv("SETTLE_APP_ENV"),
		"SETTLE_APP_PORT":                os.Getenv("SETTLE_APP_PORT"),
		"SETTLE_DATABASE_HOST":           os.Getenv("SETTLE_DATABASE_HOST"),
		"SETTLE_DATABASE_PORT":           os.Getenv("SETTLE_DATABASE_PORT"),
		"SETTLE_DATABASE_USER":           os.Getenv("SETTLE_DATABASE_USER"),
		"SETTLE_DATABASE_PASSWORD":       os.Getenv("SETTLE_DATABASE_PASSWORD"),
		"SETTLE_DATABASE_DBNAME":         os.Getenv("SETTLE_DATABASE_DBNAME"),
		"SETTLE_DATABASE_SSLMODE":        os.Getenv("SETTLE_DATABASE_SSLMODE"),
		"SETTLE_DATABASE_MAX_OPEN_CONNS": os.Getenv("SETTLE_DATABASE_MAX_OPEN_CONNS"),
		"SETTLE_DATABASE_MAX_IDLE_CONNS": os.Getenv("SETTLE_DATABASE_MAX_IDLE_CONNS"),
		"SETTLE_GATEWAY_API_KEY":         os.Getenv("SETTLE_GATEWAY_API_KEY"),
		"SETTLE_GATEWAY_DEMO_MODE":       os.Getenv("SETTLE_GATEWAY_DEMO_MODE"),
		"SETTLE_GATEWAY_TIMEOUT":         os.Getenv("SETTLE_GATEWAY_TIMEOUT"),
		"SETTLE_JWT_SECRET":              os.Getenv("SETTLE_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "settlement-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "settlement", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "MagicPay", cfg.Gateway.Name)
		assert.False(t, cfg.Gateway.DemoMode)
		assert.Empty(t, cfg.Gateway.APIKey)
	})

	t.Run("loads values from environment variables with SETTLE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_APP_NAME", "test-app")
		os.Setenv("SETTLE_APP_ENV", "testing")
		os.Setenv("SETTLE_APP_PORT", "9000")
		os.Setenv("SETTLE_DATABASE_HOST", "testdb.local")
		os.Setenv("SETTLE_DATABASE_PORT", "5433")
		os.Setenv("SETTLE_DATABASE_USER", "testuser")
		os.Setenv("SETTLE_DATABASE_PASSWORD", "testpass")
		os.Setenv("SETTLE_DATABASE_DBNAME", "testdb")
		os.Setenv("SETTLE_DATABASE_SSLMODE", "require")
		os.Setenv("SETTLE_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("SETTLE_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("SETTLE_GATEWAY_API_KEY", "mp_live_abc123")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "mp_live_abc123", cfg.Gateway.APIKey)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SETTLE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates gateway timeout lower bound", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_GATEWAY_TIMEOUT", "100ms")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gateway.timeout must be at least 1s")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"SETTLE_APP_ENV":           os.Getenv("SETTLE_APP_ENV"),
		"SETTLE_JWT_SECRET":        os.Getenv("SETTLE_JWT_SECRET"),
		"SETTLE_DATABASE_PASSWORD": os.Getenv("SETTLE_DATABASE_PASSWORD"),
		"SETTLE_DATABASE_SSLMODE":  os.Getenv("SETTLE_DATABASE_SSLMODE"),
		"SETTLE_GATEWAY_API_KEY":   os.Getenv("SETTLE_GATEWAY_API_KEY"),
		"SETTLE_GATEWAY_DEMO_MODE": os.Getenv("SETTLE_GATEWAY_DEMO_MODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("SETTLE_APP_ENV", "production")
		os.Setenv("SETTLE_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("SETTLE_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SETTLE_DATABASE_SSLMODE", "require")
		os.Setenv("SETTLE_GATEWAY_API_KEY", "mp_live_abc123")
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("SETTLE_JWT_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("SETTLE_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("SETTLE_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("SETTLE_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires gateway api key or demo mode in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("SETTLE_GATEWAY_API_KEY")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gateway.api_key is required in production")
	})

	t.Run("passes with demo mode and no api key in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("SETTLE_GATEWAY_API_KEY")
		os.Setenv("SETTLE_GATEWAY_DEMO_MODE", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Gateway.DemoMode)
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
