package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

func (app *BotApp) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	tgID := cb.From.ID
	data := cb.Data

	log.Printf("[callback] tgID=%d data=%s", tgID, data)

	// ---------------------------
	// выбор модели
	// ---------------------------
	model, err := ports.ParseModelKey(data)
	if err != nil {
		app.answerCallback(cb.ID, MsgUnknownModel)
		return
	}

	if err := app.AiService.SelectModel(ctx, tgID, model); err != nil {
		log.Printf("[callback] select fail tgID=%d model=%s: %v", tgID, model, err)
		app.answerCallback(cb.ID, MsgSelectFailed)
		return
	}

	// всегда отвечаем Telegram, иначе у кнопки крутится часик
	app.answerCallback(cb.ID, fmt.Sprintf(MsgModelChosen, model.Key()))

	chatID := tgID
	replyTo := 0
	if cb.Message != nil && cb.Message.Chat != nil {
		chatID = cb.Message.Chat.ID
		replyTo = cb.Message.MessageID
	}

	m := tgbotapi.NewMessage(chatID, MsgAfterSelect)
	m.ReplyToMessageID = replyTo
	app.send(m)
}

func (app *BotApp) answerCallback(id, text string) {
	if _, err := app.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("[callback] answer fail id=%s: %v", id, err)
	}
}
