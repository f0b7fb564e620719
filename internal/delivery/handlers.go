package delivery

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

type Handler struct {
	models   []ports.ModelSpec
	sessions ports.SessionStore
	cache    ports.ResponseCache
	log      *logger.ZapLogger
	started  time.Time
}

func NewHandler(
	models []ports.ModelSpec,
	sessions ports.SessionStore,
	cache ports.ResponseCache,
	log *logger.ZapLogger,
) *Handler {
	return &Handler{
		models:   models,
		sessions: sessions,
		cache:    cache,
		log:      log,
		started:  time.Now(),
	}
}

// GET /api/models
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.models)
}

// GET /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"sessions":       h.sessions.Count(),
		"cache":          h.cache.Stats(),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// GET /api/sessions/{telegram_id}
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	tgStr := chi.URLParam(r, "telegram_id")
	tgID, err := strconv.ParseInt(tgStr, 10, 64)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid telegram_id " + tgStr, Error: err})
		http.Error(w, "invalid telegram_id", http.StatusBadRequest)
		return
	}

	model := h.sessions.Current(tgID)
	writeJSON(w, map[string]any{
		"telegram_id": tgID,
		"model":       model.String(),
		"selected":    model != ports.ModelNone,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
