package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "TRANSPORT", "WEBHOOK_URL", "TELEGRAM_TOKEN", "ADMIN_TOKEN", "ADMIN_CHAT_IDS",
	"INFERENCE_BACKEND", "HF_API_URL", "HF_API_TOKEN", "OPENAI_API_KEY", "OPENAI_BASE_URL",
	"MODELS_FILE", "INFERENCE_TIMEOUT", "CHECK_MODELS_ON_START", "CACHE_MAX_USERS",
	"CACHE_MAX_ENTRIES_PER_USER", "SHUTDOWN_TIMEOUT",
}

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, TransportPolling, cfg.Transport)
	assert.Equal(t, "hf", cfg.InferenceBackend)
	assert.Equal(t, 60*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10000, cfg.CacheMaxUsers)
	assert.Equal(t, 256, cfg.CacheMaxEntriesPerUser)
	assert.True(t, cfg.CheckModelsOnStart)
	assert.Empty(t, cfg.AdminChatIDs)
	assert.Empty(t, cfg.AdminToken)
}

func TestLoadRequiresToken(t *testing.T) {
	cleanEnv(t)

	_, err := Load()
	assert.Error(t, err)
}

func TestWebhookURLSwitchesDefaultTransport(t *testing.T) {
	cleanEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("WEBHOOK_URL", "https://bot.example.uz/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TransportWebhook, cfg.Transport)
	assert.Equal(t, "https://bot.example.uz", cfg.WebhookURL)

	t.Setenv("TRANSPORT", "polling")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, TransportPolling, cfg.Transport)
}

func TestWebhookTransportNeedsURL(t *testing.T) {
	cleanEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TRANSPORT", "webhook")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadParsesValues(t *testing.T) {
	cleanEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("INFERENCE_BACKEND", "Ollama")
	t.Setenv("INFERENCE_TIMEOUT", "90")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("CACHE_MAX_USERS", "50")
	t.Setenv("CHECK_MODELS_ON_START", "false")
	t.Setenv("ADMIN_CHAT_IDS", "111, 222,,-333")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.InferenceBackend)
	assert.Equal(t, 90*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.CacheMaxUsers)
	assert.False(t, cfg.CheckModelsOnStart)
	assert.Equal(t, []int64{111, 222, -333}, cfg.AdminChatIDs)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"TRANSPORT":                  "carrier-pigeon",
		"INFERENCE_TIMEOUT":          "soon",
		"CACHE_MAX_USERS":            "0",
		"CACHE_MAX_ENTRIES_PER_USER": "-5",
		"CHECK_MODELS_ON_START":      "maybe",
		"ADMIN_CHAT_IDS":             "12,abc",
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			cleanEnv(t)
			t.Setenv("TELEGRAM_TOKEN", "123:abc")
			t.Setenv(k, v)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
