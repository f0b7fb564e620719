package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

// Sender — часть *tgbotapi.BotAPI, которой пользуются обработчики
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// AiService — диспетчер ответов и выбор модели
type AiService interface {
	GetReply(ctx context.Context, telegramID int64, userText string) ports.Reply
	SelectModel(ctx context.Context, telegramID int64, model ports.ModelID) error
	CurrentModel(telegramID int64) ports.ModelID
}

type BotApp struct {
	AiService AiService

	bot    Sender
	token  string
	models []ports.ModelSpec

	// обработчики апдейтов, которые ещё не завершились
	inflight sync.WaitGroup
}

func NewBotApp(bot Sender, token string, ai AiService, models []ports.ModelSpec) *BotApp {
	return &BotApp{
		AiService: ai,
		bot:       bot,
		token:     token,
		models:    models,
	}
}

// WebhookPath — путь вебхука, выводится из секретного токена бота
func WebhookPath(token string) string {
	return "/webhook/" + token
}

func (app *BotApp) WebhookPath() string {
	return WebhookPath(app.token)
}

// SetWebhook регистрирует вебхук в Telegram
func (app *BotApp) SetWebhook(baseURL string) error {
	link := strings.TrimRight(baseURL, "/") + app.WebhookPath()

	wh, err := tgbotapi.NewWebhook(link)
	if err != nil {
		return fmt.Errorf("build webhook: %w", err)
	}

	if _, err := app.bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	log.Printf("[bot_app] webhook set base=%s", baseURL)
	return nil
}

// DeleteWebhook снимает вебхук. Нужен перед long polling и при остановке.
func (app *BotApp) DeleteWebhook() error {
	if _, err := app.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	log.Printf("[bot_app] webhook deleted")
	return nil
}

// dispatch обрабатывает апдейт в фоне. Отмена ctx не прерывает уже начатый ответ:
// при остановке бота его дожидается Wait.
func (app *BotApp) dispatch(ctx context.Context, update tgbotapi.Update) {
	app.inflight.Add(1)
	go func() {
		defer app.inflight.Done()
		app.HandleUpdate(context.WithoutCancel(ctx), update)
	}()
}

// Wait ждёт завершения начатых обработчиков, но не дольше ctx.
func (app *BotApp) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		app.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for handlers: %w", ctx.Err())
	}
}
