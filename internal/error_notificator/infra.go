package error_notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Infra struct {
	bot    Sender
	admins []int64
}

func NewInfra(bot Sender, admins []int64) *Infra {
	return &Infra{bot: bot, admins: admins}
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	if len(i.admins) == 0 {
		return nil
	}
	if i.bot == nil {
		log.Printf("[error_notificator] bot not set, err=%v", err)
		return fmt.Errorf("bot not set")
	}

	text := fmt.Sprintf(
		"❗ Ошибка в боте\n\nОшибка: %v\n\nДетали: %s",
		err,
		details,
	)

	var firstErr error
	for _, chatID := range i.admins {
		if _, sendErr := i.bot.Send(tgbotapi.NewMessage(chatID, text)); sendErr != nil {
			log.Printf("[error_notificator] send fail to %d: %v", chatID, sendErr)
			if firstErr == nil {
				firstErr = sendErr
			}
		}
	}

	return firstErr
}
