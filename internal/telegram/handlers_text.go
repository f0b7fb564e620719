package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

func (app *BotApp) handleText(ctx context.Context, msg *tgbotapi.Message, tgID int64) {
	chatID := msg.Chat.ID

	log.Printf("[text] start tgID=%d", tgID)

	// === 0. "печатает…" пока думает модель ===
	if app.AiService.CurrentModel(tgID) != ports.ModelNone {
		if _, err := app.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
			log.Printf("[text] chat action fail tgID=%d: %v", tgID, err)
		}
	}

	// === 1. ответ ===
	// сообщения без текста (стикеры, фото) считаются пустыми
	reply := app.AiService.GetReply(ctx, tgID, msg.Text)

	text := reply.Text
	if reply.Cached {
		text += cachedSuffix
	}

	// === 2. отправляем ===
	out := tgbotapi.NewMessage(chatID, truncate(text))
	out.ReplyToMessageID = msg.MessageID
	if reply.Kind == ports.ReplyNoModel {
		out.ReplyMarkup = app.ModelKeyboard()
	}
	app.send(out)

	log.Printf("[text] done tgID=%d kind=%d cached=%v", tgID, reply.Kind, reply.Cached)
}
