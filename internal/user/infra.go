package user

import (
	"sync"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

type infra struct {
	mu     sync.RWMutex
	models map[int64]ports.ModelID
}

func NewInfra() Infra {
	return &infra{models: make(map[int64]ports.ModelID)}
}

func (i *infra) SetModel(telegramID int64, model ports.ModelID) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if model == ports.ModelNone {
		delete(i.models, telegramID)
		return
	}
	i.models[telegramID] = model
}

func (i *infra) GetModel(telegramID int64) (ports.ModelID, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	m, ok := i.models[telegramID]
	return m, ok
}

func (i *infra) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.models)
}
