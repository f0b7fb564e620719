package user

import "github.com/Vovarama1992/uz_ai_bot/internal/ports"

type service struct {
	infra Infra
	cache CacheCleaner
}

func NewService(infra Infra, cache CacheCleaner) ports.SessionStore {
	return &service{infra: infra, cache: cache}
}

// Select — смена модели всегда чистит кэш пользователя,
// даже если выбрана та же самая модель.
func (s *service) Select(telegramID int64, model ports.ModelID) {
	s.infra.SetModel(telegramID, model)
	s.cache.Clear(telegramID)
}

func (s *service) Current(telegramID int64) ports.ModelID {
	m, ok := s.infra.GetModel(telegramID)
	if !ok {
		return ports.ModelNone
	}
	return m
}

func (s *service) Count() int {
	return s.infra.Count()
}
