package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// ModelKeyboard — по кнопке на модель, callback data вида model_<key>
func (app *BotApp) ModelKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range app.models {
		btn := tgbotapi.NewInlineKeyboardButtonData(s.Title, s.ID.CallbackData())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
