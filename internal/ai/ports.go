package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

// Backend — внешний сервер инференса. Токенизация и декодирование живут там.
type Backend interface {
	Name() string
	Generate(ctx context.Context, remoteName, prompt string, params ports.GenerationParams) (string, error)
	// Check проверяет, что модель загружена и отвечает.
	Check(ctx context.Context, remoteName string) error
}

// Models: что диспетчеру нужно от реестра.
type Models interface {
	Get(id ports.ModelID) (ports.Generator, bool)
}

var ErrEmptyOutput = errors.New("model returned empty output")

// InferenceFault — любой сбой вызова модели, включая пустой ответ и таймаут.
type InferenceFault struct {
	Model ports.ModelID
	Err   error
}

func (f *InferenceFault) Error() string {
	return fmt.Sprintf("inference %s: %v", f.Model, f.Err)
}

func (f *InferenceFault) Unwrap() error { return f.Err }
