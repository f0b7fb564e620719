package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/uz_ai_bot/internal/ai"
	"github.com/Vovarama1992/uz_ai_bot/internal/cache"
	"github.com/Vovarama1992/uz_ai_bot/internal/config"
	"github.com/Vovarama1992/uz_ai_bot/internal/delivery"
	"github.com/Vovarama1992/uz_ai_bot/internal/error_notificator"
	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
	"github.com/Vovarama1992/uz_ai_bot/internal/telegram"
	"github.com/Vovarama1992/uz_ai_bot/internal/user"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// STATE (SESSIONS / CACHE)
	// =========================================================================

	responseCache, err := cache.NewLRUCache(cfg.CacheMaxUsers, cfg.CacheMaxEntriesPerUser)
	if err != nil {
		log.Fatalf("failed to init cache: %v", err)
	}
	sessions := user.NewService(user.NewInfra(), responseCache)

	// =========================================================================
	// MODELS
	// =========================================================================

	// без MODELS_FILE берутся параметры по умолчанию
	specs, err := ai.LoadCatalog(cfg.ModelsFile)
	if err != nil {
		log.Fatalf("failed to load models file: %v", err)
	}

	backend, err := ai.NewBackend(cfg.InferenceBackend, ai.BackendOptions{
		HFBaseURL:     cfg.HFAPIURL,
		HFToken:       cfg.HFAPIToken,
		OpenAIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		log.Fatalf("failed to init inference backend: %v", err)
	}

	registry, err := ai.NewRegistry(specs, backend)
	if err != nil {
		log.Fatalf("failed to build model registry: %v", err)
	}

	// все три модели должны быть доступны до приёма сообщений
	if cfg.CheckModelsOnStart {
		if err := registry.CheckAll(ctx); err != nil {
			log.Fatalf("model check failed: %v", err)
		}
	}

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "models ready, backend=" + backend.Name(),
		Service: "uz_ai_bot",
	})

	// =========================================================================
	// TELEGRAM / ERROR NOTIFICATION
	// =========================================================================

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("failed to init telegram bot: %v", err)
	}
	log.Printf("[bot] authorized as @%s", api.Self.UserName)

	errInfra := error_notificator.NewInfra(api, cfg.AdminChatIDs)
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	aiService := ai.NewAiService(
		registry,
		sessions,
		responseCache,
		errService,
		zl,
		cfg.InferenceTimeout,
	)

	botApp := telegram.NewBotApp(api, cfg.TelegramToken, aiService, registry.Specs())

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()

	var hook *delivery.Webhook
	if cfg.Transport == config.TransportWebhook {
		hook = &delivery.Webhook{
			Path:    botApp.WebhookPath(),
			Handler: telegram.NewBotHandler(botApp).Webhook,
		}
	}

	delivery.RegisterRoutes(
		r,
		delivery.NewHandler(registry.Specs(), sessions, responseCache, zl),
		cfg.AdminToken,
		hook,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// =========================================================================
	// TRANSPORT
	// =========================================================================

	// в режиме вебхука закрыт сразу
	pollingDone := make(chan struct{})

	switch cfg.Transport {
	case config.TransportWebhook:
		close(pollingDone)
		if err := botApp.SetWebhook(cfg.WebhookURL); err != nil {
			log.Fatalf("failed to set webhook: %v", err)
		}
		log.Printf("[bot] webhook mode, url=%s", cfg.WebhookURL)

	default:
		// иначе getUpdates вернёт 409
		if err := botApp.DeleteWebhook(); err != nil {
			log.Printf("[bot] delete webhook failed: %v", err)
		}
		go func() {
			botApp.RunPolling(ctx, api)
			close(pollingDone)
		}()
	}

	// =========================================================================
	// START SERVER
	// =========================================================================

	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "listening at " + srv.Addr,
			Service: "uz_ai_bot",
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[main] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if cfg.Transport == config.TransportWebhook {
		if err := botApp.DeleteWebhook(); err != nil {
			log.Printf("[bot] delete webhook failed: %v", err)
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}

	// новых апдейтов уже нет, дожидаемся начатых ответов
	<-pollingDone
	if err := botApp.Wait(shutdownCtx); err != nil {
		log.Printf("[main] %v", err)
	}

	logStats(zl, sessions, responseCache)
}

func logStats(zl *logger.ZapLogger, sessions ports.SessionStore, c ports.ResponseCache) {
	st := c.Stats()
	zl.Log(logger.LogEntry{
		Level: "info",
		Message: fmt.Sprintf(
			"final stats: sessions=%d cache_users=%d cache_entries=%d hits=%d misses=%d",
			sessions.Count(), st.Users, st.Entries, st.Hits, st.Misses,
		),
		Service: "uz_ai_bot",
	})
}
