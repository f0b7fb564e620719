package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// лимит на вебхук: Telegram шлёт с небольшого пула адресов
const webhookRequestsPerMinute = 1200

type Webhook struct {
	Path    string
	Handler http.HandlerFunc
}

// /api монтируется только при заданном adminToken, вебхук только при hook != nil
func RegisterRoutes(
	r chi.Router,
	h *Handler,
	adminToken string,
	hook *Webhook,
) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	// --- вебхук Telegram ---
	if hook != nil {
		r.With(
			httputil.RecoverMiddleware,
			httprate.LimitByIP(webhookRequestsPerMinute, time.Minute),
		).Post(hook.Path, hook.Handler)
	}

	// --- админское API ---
	if adminToken == "" {
		return
	}

	r.Route("/api", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			}),
			AuthMiddleware(adminToken),
		)

		pr.Get("/models", h.Models)
		pr.Get("/stats", h.Stats)
		pr.Get("/sessions/{telegram_id}", h.Session)
	})
}
