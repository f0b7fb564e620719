package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"

	notificator "github.com/Vovarama1992/uz_ai_bot/internal/error_notificator"
	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

const DefaultInferenceTimeout = 60 * time.Second

// AiService — диспетчер: сессия → кэш → модель → кэш.
// Все операции одного пользователя идут строго по очереди.
type AiService struct {
	models   Models
	sessions ports.SessionStore
	cache    ports.ResponseCache
	Notifier notificator.Notificator
	log      *logger.ZapLogger
	timeout  time.Duration
	locks    *userLocks
}

func NewAiService(
	models Models,
	sessions ports.SessionStore,
	cache ports.ResponseCache,
	notifier notificator.Notificator,
	log *logger.ZapLogger,
	timeout time.Duration,
) *AiService {
	if timeout <= 0 {
		timeout = DefaultInferenceTimeout
	}
	return &AiService{
		models:   models,
		sessions: sessions,
		cache:    cache,
		Notifier: notifier,
		log:      log,
		timeout:  timeout,
		locks:    newUserLocks(),
	}
}

// SelectModel — выбор модели. Ждёт завершения запроса этого пользователя,
// поэтому ответ старой модели не может попасть в кэш после очистки.
func (s *AiService) SelectModel(ctx context.Context, telegramID int64, model ports.ModelID) error {
	if _, ok := s.models.Get(model); !ok {
		return fmt.Errorf("model %s is not registered", model)
	}

	unlock := s.locks.lock(telegramID)
	defer unlock()

	s.sessions.Select(telegramID, model)

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("model selected tg=%d model=%s", telegramID, model),
	})
	return nil
}

func (s *AiService) CurrentModel(telegramID int64) ports.ModelID {
	return s.sessions.Current(telegramID)
}

// === главный метод ===
func (s *AiService) GetReply(ctx context.Context, telegramID int64, userText string) ports.Reply {
	unlock := s.locks.lock(telegramID)
	defer unlock()

	// 1) модель не выбрана
	model := s.sessions.Current(telegramID)
	if model == ports.ModelNone {
		return ports.Reply{Text: MsgSelectModelFirst, Kind: ports.ReplyNoModel}
	}

	// 2) пустое сообщение
	text := strings.TrimSpace(userText)
	if text == "" {
		return ports.Reply{Text: MsgEmptyMessage, Kind: ports.ReplyEmpty}
	}

	// 3) кэш
	if answer, ok := s.cache.Lookup(telegramID, text); ok {
		return ports.Reply{Text: answer, Kind: ports.ReplyAnswer, Cached: true}
	}

	// 4–5) инференс, любой сбой → фиксированный ответ
	reply := s.generate(ctx, telegramID, model, text)

	// отменённый вызывающим запрос не кэшируем: модель тут ни при чём
	if errors.Is(ctx.Err(), context.Canceled) {
		return reply
	}

	// 6) в кэш кладём и запасной ответ тоже
	s.cache.Store(telegramID, text, reply.Text)
	return reply
}

func (s *AiService) generate(ctx context.Context, telegramID int64, model ports.ModelID, text string) ports.Reply {
	reqID := uuid.NewString()
	start := time.Now()

	answer, err := s.invoke(ctx, model, text)
	elapsed := time.Since(start)

	if err == nil {
		s.log.Log(logger.LogEntry{
			Level:   "info",
			Message: fmt.Sprintf("inference done req=%s tg=%d model=%s took=%s", reqID, telegramID, model, elapsed.Round(time.Millisecond)),
		})
		return ports.Reply{Text: answer, Kind: ports.ReplyAnswer}
	}

	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("inference failed req=%s tg=%d model=%s took=%s", reqID, telegramID, model, elapsed.Round(time.Millisecond)),
		Error:   err,
	})

	if errors.Is(err, ErrEmptyOutput) {
		return ports.Reply{Text: MsgNoAnswer, Kind: ports.ReplyFallback}
	}
	if errors.Is(err, context.Canceled) {
		return ports.Reply{Text: MsgInferenceError, Kind: ports.ReplyFallback}
	}

	s.notifyInferenceError(ctx, reqID, telegramID, model, err)
	return ports.Reply{Text: MsgInferenceError, Kind: ports.ReplyFallback}
}

func (s *AiService) invoke(ctx context.Context, model ports.ModelID, text string) (answer string, err error) {
	gen, ok := s.models.Get(model)
	if !ok {
		return "", &InferenceFault{Model: model, Err: errors.New("model not registered")}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			answer = ""
			err = &InferenceFault{Model: model, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	answer, err = gen.Generate(ctx, text)
	if err != nil {
		var fault *InferenceFault
		if !errors.As(err, &fault) {
			err = &InferenceFault{Model: model, Err: err}
		}
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", &InferenceFault{Model: model, Err: ErrEmptyOutput}
	}
	return answer, nil
}

// диагностика ошибок инференса
func analyzeInferenceError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "Модель не ответила за отведённое время."
	}
	if errors.Is(err, context.Canceled) {
		return "Запрос отменён."
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "http 401"), strings.Contains(msg, "status code: 401"):
		return "Неверный токен сервера инференса."
	case strings.Contains(msg, "http 404"), strings.Contains(msg, "status code: 404"):
		return "Модель не найдена."
	case strings.Contains(msg, "http 429"), strings.Contains(msg, "status code: 429"):
		return "Превышен лимит запросов."
	case strings.Contains(msg, "http 503"), strings.Contains(msg, "loading"):
		return "Модель ещё загружается."
	case strings.Contains(msg, "panic"):
		return "Паника внутри клиента модели."
	}
	return "Неизвестная ошибка инференса."
}

func (s *AiService) notifyInferenceError(ctx context.Context, reqID string, telegramID int64, model ports.ModelID, err error) {
	if s.Notifier == nil {
		return
	}
	details := fmt.Sprintf("Запрос: %s\nПользователь: %d\nМодель: %s\n\n%s",
		reqID, telegramID, model, analyzeInferenceError(err))

	if nErr := s.Notifier.Notify(ctx, err, details); nErr != nil {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "admin notification failed",
			Error:   nErr,
		})
	}
}
