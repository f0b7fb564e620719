package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/uz_ai_bot/internal/ai"
	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

const (
	MsgWelcome      = "Salom! Men AI yordamchi botman.\nModelni tanlang va xabaringizni yuboring:"
	MsgAfterSelect  = "Endi xabaringizni yozing, AI javob beradi..."
	MsgModelChosen  = "Model tanlandi: %s"
	MsgCurrentModel = "Joriy model: %s"
	MsgUnknownModel = "Noma’lum model."
	MsgSelectFailed = "Modelni tanlab bo‘lmadi. Qayta urinib ko‘ring."

	cachedSuffix = " (cached)"

	// лимит Telegram на длину сообщения
	maxMessageRunes = 4096
)

func (app *BotApp) sendWelcome(chatID int64, replyTo int) {
	m := tgbotapi.NewMessage(chatID, MsgWelcome)
	m.ReplyToMessageID = replyTo
	m.ReplyMarkup = app.ModelKeyboard()
	app.send(m)
}

func (app *BotApp) sendCurrentModel(chatID int64, replyTo int, tgID int64) {
	current := app.AiService.CurrentModel(tgID)
	if current == ports.ModelNone {
		m := tgbotapi.NewMessage(chatID, ai.MsgSelectModelFirst)
		m.ReplyToMessageID = replyTo
		m.ReplyMarkup = app.ModelKeyboard()
		app.send(m)
		return
	}

	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(MsgCurrentModel, app.modelTitle(current)))
	m.ReplyToMessageID = replyTo
	app.send(m)
}

func (app *BotApp) modelTitle(id ports.ModelID) string {
	for _, s := range app.models {
		if s.ID == id && s.Title != "" {
			return s.Title
		}
	}
	return id.String()
}

func (app *BotApp) send(m tgbotapi.MessageConfig) {
	if _, err := app.bot.Send(m); err != nil {
		log.Printf("[send] chat=%d err=%v", m.ChatID, err)
	}
}

func truncate(text string) string {
	r := []rune(text)
	if len(r) <= maxMessageRunes {
		return text
	}
	return string(r[:maxMessageRunes-1]) + "…"
}
