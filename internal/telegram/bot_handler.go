package telegram

import (
	"encoding/json"
	"errors"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// апдейт Telegram укладывается в несколько килобайт
const maxUpdateBytes = 1 << 20

// BotHandler — HTTP-прослойка вебхука Telegram
type BotHandler struct {
	app *BotApp
}

func NewBotHandler(app *BotApp) *BotHandler {
	return &BotHandler{app: app}
}

// POST /webhook/{token}
// Апдейт обрабатывается в фоне, Telegram сразу получает пустой 200.
func (h *BotHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpdateBytes)

	var upd tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "update too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	h.app.dispatch(r.Context(), upd)

	w.WriteHeader(http.StatusOK)
}
