package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Updates — источник апдейтов для long polling (*tgbotapi.BotAPI)
type Updates interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RunPolling — главный цикл получения апдейтов. Каждый апдейт в своей горутине,
// порядок для одного пользователя держит диспетчер. После выхода начатые
// обработчики ещё работают, их ждёт Wait.
func (app *BotApp) RunPolling(ctx context.Context, src Updates) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := src.GetUpdatesChan(u)
	log.Printf("[bot_loop] polling started")

	for {
		select {
		case <-ctx.Done():
			log.Printf("[bot_loop] context cancelled, stopping")
			src.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Printf("[bot_loop] updates channel closed")
				return
			}
			app.dispatch(ctx, update)
		}
	}
}

func (app *BotApp) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	tgID := extractTelegramID(update)
	if tgID == 0 {
		return
	}

	log.Printf("[bot_touch] fromTG=%d updateID=%d", tgID, update.UpdateID)

	switch {
	case update.CallbackQuery != nil:
		app.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		app.handleMessage(ctx, update.Message, tgID)
	}
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message, tgID int64) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			app.sendWelcome(msg.Chat.ID, msg.MessageID)
			return
		case "model":
			app.sendCurrentModel(msg.Chat.ID, msg.MessageID, tgID)
			return
		}
		// прочие команды идут в модель как обычный текст
	}

	app.handleText(ctx, msg, tgID)
}

func extractTelegramID(u tgbotapi.Update) int64 {
	switch {
	case u.Message != nil && u.Message.From != nil:
		return u.Message.From.ID
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		return u.CallbackQuery.From.ID
	default:
		return 0
	}
}
