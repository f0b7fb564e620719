package user

import "github.com/Vovarama1992/uz_ai_bot/internal/ports"

// Infra — хранение выбранных моделей (только память процесса)
type Infra interface {
	SetModel(telegramID int64, model ports.ModelID)
	GetModel(telegramID int64) (ports.ModelID, bool)
	Count() int
}

// CacheCleaner: всё, что нужно сессиям от кэша ответов
type CacheCleaner interface {
	Clear(telegramID int64)
}
