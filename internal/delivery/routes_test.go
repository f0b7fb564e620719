package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/uz_ai_bot/internal/ai"
	"github.com/Vovarama1992/uz_ai_bot/internal/cache"
	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
	"github.com/Vovarama1992/uz_ai_bot/internal/user"
)

const testToken = "admin-secret"

func newTestRouter(t *testing.T, adminToken string, hook *Webhook) (http.Handler, ports.SessionStore, ports.ResponseCache) {
	t.Helper()

	c, err := cache.NewLRUCache(10, 10)
	require.NoError(t, err)
	sessions := user.NewService(user.NewInfra(), c)

	h := NewHandler(ai.DefaultCatalog(), sessions, c, logger.NewZapLogger(zap.NewNop().Sugar()))
	r := chi.NewRouter()
	RegisterRoutes(r, h, adminToken, hook)
	return r, sessions, c
}

func do(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	r, _, _ := newTestRouter(t, "", nil)

	rec := do(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestAPIDisabledWithoutToken(t *testing.T) {
	r, _, _ := newTestRouter(t, "", nil)

	rec := do(r, http.MethodGet, "/api/models", "anything")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	r, _, _ := newTestRouter(t, testToken, nil)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/stats", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/stats", "wrong").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/stats", testToken).Code)
}

func TestModels(t *testing.T) {
	r, _, _ := newTestRouter(t, testToken, nil)

	rec := do(r, http.MethodGet, "/api/models", testToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []ports.ModelSpec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "mt5", got[2].Key)
	assert.Equal(t, 100, got[2].Params.MaxNewTokens)
}

func TestStatsAndSession(t *testing.T) {
	r, sessions, c := newTestRouter(t, testToken, nil)
	sessions.Select(42, ports.ModelMT5)
	c.Store(42, "hi", "salom")

	rec := do(r, http.MethodGet, "/api/stats", testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		Sessions int              `json:"sessions"`
		Cache    ports.CacheStats `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 1, stats.Cache.Entries)

	rec = do(r, http.MethodGet, "/api/sessions/42", testToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"telegram_id":42,"model":"mt5","selected":true}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/sessions/7", testToken)
	assert.JSONEq(t, `{"telegram_id":7,"model":"none","selected":false}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/sessions/abc", testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookRoute(t *testing.T) {
	var hits int
	hook := &Webhook{
		Path: "/webhook/123:abc",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusOK)
		},
	}
	r, _, _ := newTestRouter(t, "", hook)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/webhook/123:abc", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(r, http.MethodGet, "/webhook/123:abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/webhook/other", "").Code)
	assert.Equal(t, 1, hits)
}
