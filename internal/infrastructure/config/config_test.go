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
		"EEZY_APP_NAME":          os.Getenv("EEZY_APP_NAME"),
		"EEZY_APP_ENV":           os.Getenv("EEZY_APP_ENV"),
		"EEZY_APP_PORT":          os.Getenv("EEZY_APP_PORT"),
		"EEZY_DATABASE_HOST":     os.Getenv("EEZY_DATABASE_HOST"),
		"EEZY_DATABASE_PORT":     os.Getenv("EEZY_DATABASE_PORT"),
		"EEZY_DATABASE_USER":     os.Getenv("EEZY_DATABASE_USER"),
		"EEZY_DATABASE_PASSWORD": os.Getenv("EEZY_DATABASE_PASSWORD"),
		"EEZY_DATABASE_DBNAME":   os.Getenv("EEZY_DATABASE_DBNAME"),
		"EEZY_DATABASE_SSLMODE":  os.Getenv("EEZY_DATABASE_SSLMODE"),
		"EEZY_JWT_SECRET":        os.Getenv("EEZY_JWT_SECRET"),
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

		assert.Equal(t, "eezystore-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "eezystore", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("loads values from environment variables with EEZY prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("EEZY_APP_NAME", "test-app")
		os.Setenv("EEZY_APP_PORT", "9000")
		os.Setenv("EEZY_DATABASE_HOST", "testdb.local")
		os.Setenv("EEZY_DATABASE_PORT", "5433")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("EEZY_APP_ENV", "production")
		os.Setenv("EEZY_DATABASE_PASSWORD", "secret")
		os.Setenv("EEZY_DATABASE_SSLMODE", "require")
		os.Setenv("EEZY_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		clearEnv()
		os.Setenv("EEZY_APP_ENV", "production")
		os.Setenv("EEZY_DATABASE_PASSWORD", "secret")
		os.Setenv("EEZY_JWT_SECRET", "0123456789abcdef0123456789abcdef")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "eezystore",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "eezystore")
	assert.Contains(t, dsn, "sslmode=disable")
	// password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
