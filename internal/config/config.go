package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	TransportPolling = "polling"
	TransportWebhook = "webhook"
)

type Config struct {
	Port       string
	Transport  string
	WebhookURL string

	TelegramToken string
	AdminChatIDs  []int64
	AdminToken    string

	// инференс
	InferenceBackend   string
	HFAPIURL           string
	HFAPIToken         string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	ModelsFile         string
	InferenceTimeout   time.Duration
	CheckModelsOnStart bool

	CacheMaxUsers          int
	CacheMaxEntriesPerUser int

	ShutdownTimeout time.Duration
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		WebhookURL:    strings.TrimRight(getEnv("WEBHOOK_URL", ""), "/"),
		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
		AdminToken:    getEnv("ADMIN_TOKEN", ""),

		InferenceBackend: strings.ToLower(getEnv("INFERENCE_BACKEND", "hf")),
		HFAPIURL:         getEnv("HF_API_URL", ""),
		HFAPIToken:       getEnv("HF_API_TOKEN", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		ModelsFile:       getEnv("MODELS_FILE", ""),
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("missing required env TELEGRAM_TOKEN")
	}

	def := TransportPolling
	if cfg.WebhookURL != "" {
		def = TransportWebhook
	}
	cfg.Transport = strings.ToLower(getEnv("TRANSPORT", def))
	switch cfg.Transport {
	case TransportPolling:
	case TransportWebhook:
		if cfg.WebhookURL == "" {
			return nil, errors.New("TRANSPORT=webhook requires WEBHOOK_URL")
		}
	default:
		return nil, errors.Errorf("unknown TRANSPORT %q", cfg.Transport)
	}

	var err error
	if cfg.InferenceTimeout, err = durationEnv("INFERENCE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheMaxUsers, err = intEnv("CACHE_MAX_USERS", 10000); err != nil {
		return nil, err
	}
	if cfg.CacheMaxEntriesPerUser, err = intEnv("CACHE_MAX_ENTRIES_PER_USER", 256); err != nil {
		return nil, err
	}
	if cfg.CheckModelsOnStart, err = boolEnv("CHECK_MODELS_ON_START", true); err != nil {
		return nil, err
	}
	if cfg.AdminChatIDs, err = idsEnv("ADMIN_CHAT_IDS"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// голое число считаем секундами
		n, nerr := strconv.Atoi(v)
		if nerr != nil {
			return 0, errors.Wrapf(err, "invalid %s", k)
		}
		d = time.Duration(n) * time.Second
	}
	if d <= 0 {
		return 0, errors.Errorf("invalid %s: must be positive", k)
	}
	return d, nil
}

func intEnv(k string, def int) (int, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", k)
	}
	if n <= 0 {
		return 0, errors.Errorf("invalid %s: must be positive", k)
	}
	return n, nil
}

func boolEnv(k string, def bool) (bool, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "invalid %s", k)
	}
	return b, nil
}

// ADMIN_CHAT_IDS=123,456
func idsEnv(k string) ([]int64, error) {
	v := getEnv(k, "")
	if v == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s entry %q", k, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
