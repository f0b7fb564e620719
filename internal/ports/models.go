package ports

import (
	"context"
	"fmt"
	"strings"
)

// ModelID — закрытый набор моделей, доступных пользователю.
type ModelID int

const (
	ModelNone ModelID = iota // модель не выбрана
	ModelBlender
	ModelDialoGPT
	ModelMT5
)

// порядок кнопок в клавиатуре выбора
var AllModels = []ModelID{ModelBlender, ModelDialoGPT, ModelMT5}

const callbackPrefix = "model_"

// Key — короткое имя модели, оно же хвост callback data.
func (id ModelID) Key() string {
	switch id {
	case ModelBlender:
		return "blender"
	case ModelDialoGPT:
		return "dialogpt"
	case ModelMT5:
		return "mt5"
	}
	return ""
}

func (id ModelID) CallbackData() string {
	if id == ModelNone {
		return ""
	}
	return callbackPrefix + id.Key()
}

func (id ModelID) String() string {
	if k := id.Key(); k != "" {
		return k
	}
	return "none"
}

// ParseModelKey принимает как "mt5", так и "model_mt5".
func ParseModelKey(s string) (ModelID, error) {
	key := strings.TrimPrefix(strings.TrimSpace(s), callbackPrefix)
	for _, id := range AllModels {
		if id.Key() == key {
			return id, nil
		}
	}
	return ModelNone, fmt.Errorf("unknown model: %q", s)
}

// GenerationParams — фиксированные параметры декодирования для модели.
type GenerationParams struct {
	MaxNewTokens      int     `json:"max_new_tokens" yaml:"max_new_tokens"`
	NumBeams          int     `json:"num_beams,omitempty" yaml:"num_beams"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty" yaml:"repetition_penalty"`
	EarlyStopping     bool    `json:"early_stopping,omitempty" yaml:"early_stopping"`
	DoSample          bool    `json:"do_sample,omitempty" yaml:"do_sample"`
	TopP              float64 `json:"top_p,omitempty" yaml:"top_p"`
	TopK              int     `json:"top_k,omitempty" yaml:"top_k"`
	PadWithEOS        bool    `json:"pad_with_eos,omitempty" yaml:"pad_with_eos"`
}

type ModelSpec struct {
	ID           ModelID          `json:"-"`
	Key          string           `json:"key"`
	Title        string           `json:"title"`
	RemoteName   string           `json:"remote_name"`
	PromptPrefix string           `json:"prompt_prefix,omitempty"`
	Params       GenerationParams `json:"params"`
}

// Generator — модель, уже связанная с бэкендом инференса.
// Ошибка означает сбой инференса, пустой текст ответом не считается.
type Generator interface {
	Spec() ModelSpec
	Generate(ctx context.Context, text string) (string, error)
}
