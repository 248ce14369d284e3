package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-discord-activity/internal/config"
	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) func(string, string) string {
	return func(envVar, defaultValue string) string {
		if v, ok := values[envVar]; ok && v != "" {
			return v
		}
		return defaultValue
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := config.FromEnv(lookupFrom(map[string]string{
			"VITE_CLIENT_ID": "1234",
			"CLIENT_SECRET":  "shh",
		}))
		require.NoError(t, err)
		require.Equal(t, ":3001", c.GetPort())
		require.Equal(t, "development", c.GetEnv())
		require.False(t, c.IsProduction())
		require.Equal(t, "1234", c.GetClientID())
		require.Equal(t, "shh", c.GetClientSecret())
		require.Equal(t, "https://discord.com", c.GetDiscordBaseURL())
		require.Equal(t, 10*time.Second, c.GetUpstreamTimeout())
		require.Empty(t, c.GetAllowedOrigins())
	})

	t.Run("overrides", func(t *testing.T) {
		c, err := config.FromEnv(lookupFrom(map[string]string{
			"CLIENT_ID":        "5678",
			"CLIENT_SECRET":    "shh",
			"PORT":             "8080",
			"NODE_ENV":         "production",
			"ALLOWED_ORIGINS":  "https://a.example.com, https://b.example.com,",
			"UPSTREAM_TIMEOUT": "2s",
		}))
		require.NoError(t, err)
		require.Equal(t, ":8080", c.GetPort())
		require.True(t, c.IsProduction())
		require.Equal(t, "5678", c.GetClientID())
		require.Equal(t, 2*time.Second, c.GetUpstreamTimeout())
		require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example.com"))
		require.Equal(t, "https://a.example.com, https://b.example.com", c.GetAllowedOrigins().String())
	})

	t.Run("missing secret fails closed", func(t *testing.T) {
		_, err := config.FromEnv(lookupFrom(map[string]string{"VITE_CLIENT_ID": "1234"}))
		require.ErrorIs(t, err, apperrors.ErrMissingClientSecret)
	})

	t.Run("missing client id", func(t *testing.T) {
		_, err := config.FromEnv(lookupFrom(map[string]string{"CLIENT_SECRET": "shh"}))
		require.ErrorIs(t, err, apperrors.ErrMissingClientID)
	})

	t.Run("invalid port", func(t *testing.T) {
		_, err := config.FromEnv(lookupFrom(map[string]string{
			"VITE_CLIENT_ID": "1234",
			"CLIENT_SECRET":  "shh",
			"PORT":           "abc",
		}))
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})

	t.Run("port with colon is rejected", func(t *testing.T) {
		_, err := config.FromEnv(lookupFrom(map[string]string{
			"VITE_CLIENT_ID": "1234",
			"CLIENT_SECRET":  "shh",
			"PORT":           ":3001",
		}))
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		_, err := config.FromEnv(lookupFrom(map[string]string{
			"VITE_CLIENT_ID":   "1234",
			"CLIENT_SECRET":    "shh",
			"UPSTREAM_TIMEOUT": "soon",
		}))
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})

	t.Run("secret is not printed", func(t *testing.T) {
		c, err := config.FromEnv(lookupFrom(map[string]string{
			"VITE_CLIENT_ID": "1234",
			"CLIENT_SECRET":  "super-secret-value",
		}))
		require.NoError(t, err)
		require.NotContains(t, fmt.Sprintf("%v", c), "super-secret-value")
		require.NotContains(t, fmt.Sprintf("%+v", c), "super-secret-value")
	})
}

// clearEnv unsets the variables for the duration of the test so values from
// the .env file are not shadowed by the runner's environment.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	keys := []string{"VITE_CLIENT_ID", "CLIENT_ID", "CLIENT_SECRET", "PORT", "NODE_ENV", "ENV", "LOG_LEVEL"}

	t.Run("reads the env file", func(t *testing.T) {
		clearEnv(t, keys...)
		t.Setenv("ENV_FILE", writeEnvFile(t, "VITE_CLIENT_ID=from-file\nCLIENT_SECRET=file-secret\nPORT=4000\n"))

		c, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, "from-file", c.GetClientID())
		require.Equal(t, "file-secret", c.GetClientSecret())
		require.Equal(t, ":4000", c.GetPort())
	})

	t.Run("environment wins over the env file", func(t *testing.T) {
		clearEnv(t, keys...)
		t.Setenv("PORT", "5000")
		t.Setenv("ENV_FILE", writeEnvFile(t, "VITE_CLIENT_ID=from-file\nCLIENT_SECRET=file-secret\nPORT=4000\n"))

		c, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, ":5000", c.GetPort())
	})

	t.Run("missing env file is tolerated", func(t *testing.T) {
		clearEnv(t, keys...)
		t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
		t.Setenv("VITE_CLIENT_ID", "1234")
		t.Setenv("CLIENT_SECRET", "shh")

		c, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, ":3001", c.GetPort())
	})

	t.Run("missing secret fails", func(t *testing.T) {
		clearEnv(t, keys...)
		t.Setenv("ENV_FILE", writeEnvFile(t, "VITE_CLIENT_ID=from-file\n"))

		_, err := config.Load()
		require.ErrorIs(t, err, apperrors.ErrMissingClientSecret)
	})
}
