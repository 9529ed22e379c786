package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aixcyberchallenge/captcha-solver/solver"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("CAPTCHA_API_KEY", "secret")

		c, err := load(viper.New())
		require.NoError(t, err, "failed to load config")

		assert.Equal(t, "secret", c.APIKey)
		assert.Equal(t, solver.DefaultBaseURL, c.BaseURL)
		assert.Equal(t, "en", c.LanguagePool)
		assert.Equal(t, 5*time.Second, c.PollInterval)
		assert.Equal(t, solver.DefaultSoftID, c.SoftID)
		assert.Equal(t, solver.DefaultRetryMax, c.HTTP.RetryMax)
		assert.Empty(t, c.CallbackURL)
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv("CAPTCHA_API_KEY", "secret")
		t.Setenv("CAPTCHA_LANGUAGE_POOL", "ru")
		t.Setenv("CAPTCHA_POLL_INTERVAL", "2s")
		t.Setenv("CAPTCHA_HTTP_RETRY_MAX", "0")
		t.Setenv("CAPTCHA_CALLBACK_URL", "https://hooks.example.com/captcha")

		c, err := load(viper.New())
		require.NoError(t, err, "failed to load config")

		assert.Equal(t, "ru", c.LanguagePool)
		assert.Equal(t, 2*time.Second, c.PollInterval)
		assert.Equal(t, 0, c.HTTP.RetryMax)
		assert.Equal(t, "https://hooks.example.com/captcha", c.CallbackURL)

		_, err = solver.New(c.APIKey, c.ClientOptions(nil)...)
		require.NoError(t, err, "config should produce a valid client")
	})

	t.Run("MissingKey", func(t *testing.T) {
		t.Setenv("CAPTCHA_API_KEY", "")

		_, err := load(viper.New())
		require.Error(t, err)
	})

	t.Run("Storage", func(t *testing.T) {
		t.Setenv("CAPTCHA_API_KEY", "secret")
		t.Setenv("CAPTCHA_STORAGE_ENDPOINT", "minio.local:9000")
		t.Setenv("CAPTCHA_STORAGE_ACCESS_KEY_ID", "id")
		t.Setenv("CAPTCHA_STORAGE_SECRET_ACCESS_KEY", "shh")

		c, err := load(viper.New())
		require.NoError(t, err, "failed to load config")

		assert.Equal(t, "minio.local:9000", c.Storage.Endpoint)
		assert.Equal(t, "id", c.Storage.AccessKeyID)
		assert.True(t, c.Storage.UseSSL)
	})

	t.Run("StorageMissingCredentials", func(t *testing.T) {
		t.Setenv("CAPTCHA_API_KEY", "secret")
		t.Setenv("CAPTCHA_STORAGE_ENDPOINT", "minio.local:9000")

		_, err := load(viper.New())
		require.Error(t, err)
	})

	t.Run("BadPool", func(t *testing.T) {
		t.Setenv("CAPTCHA_API_KEY", "secret")
		t.Setenv("CAPTCHA_LANGUAGE_POOL", "de")

		_, err := load(viper.New())
		require.Error(t, err)
	})
}
