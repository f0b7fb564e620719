package ai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

const mt5Prefix = "Generate a conversational answer in Uzbek: "

// DefaultCatalog — три модели с параметрами генерации по умолчанию.
func DefaultCatalog() []ports.ModelSpec {
	return []ports.ModelSpec{
		{
			ID:         ports.ModelBlender,
			Key:        ports.ModelBlender.Key(),
			Title:      "BlenderBot 90M",
			RemoteName: "facebook/blenderbot-90M",
			Params: ports.GenerationParams{
				MaxNewTokens: 50,
			},
		},
		{
			ID:         ports.ModelDialoGPT,
			Key:        ports.ModelDialoGPT.Key(),
			Title:      "DialoGPT-medium",
			RemoteName: "microsoft/DialoGPT-medium",
			Params: ports.GenerationParams{
				MaxNewTokens: 50,
				PadWithEOS:   true,
			},
		},
		{
			ID:           ports.ModelMT5,
			Key:          ports.ModelMT5.Key(),
			Title:        "MT5-small (O‘zbekcha)",
			RemoteName:   "google/mt5-small",
			PromptPrefix: mt5Prefix,
			Params: ports.GenerationParams{
				MaxNewTokens:      100,
				NumBeams:          5,
				RepetitionPenalty: 2.0,
				EarlyStopping:     true,
				DoSample:          true,
				TopP:              0.9,
				TopK:              50,
			},
		},
	}
}

type catalogFile struct {
	Models map[string]catalogEntry `yaml:"models"`
}

type catalogEntry struct {
	Title        string                  `yaml:"title"`
	RemoteName   string                  `yaml:"remote_name"`
	PromptPrefix *string                 `yaml:"prompt_prefix"`
	Params       *ports.GenerationParams `yaml:"params"`
}

// LoadCatalog накладывает YAML-файл поверх DefaultCatalog.
// При пустом path возвращаются значения по умолчанию.
func LoadCatalog(path string) ([]ports.ModelSpec, error) {
	specs := DefaultCatalog()
	if path == "" {
		return specs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models file: %w", err)
	}

	return applyCatalog(specs, data)
}

func applyCatalog(specs []ports.ModelSpec, data []byte) ([]ports.ModelSpec, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode models file: %w", err)
	}

	for key, e := range f.Models {
		id, err := ports.ParseModelKey(key)
		if err != nil {
			return nil, err
		}

		s := &specs[indexOf(specs, id)]
		if e.Title != "" {
			s.Title = e.Title
		}
		if e.RemoteName != "" {
			s.RemoteName = e.RemoteName
		}
		if e.PromptPrefix != nil {
			s.PromptPrefix = *e.PromptPrefix
		}
		if e.Params != nil {
			if e.Params.MaxNewTokens <= 0 {
				return nil, fmt.Errorf("model %s: max_new_tokens must be positive", key)
			}
			s.Params = *e.Params
		}
	}

	return specs, nil
}

func indexOf(specs []ports.ModelSpec, id ports.ModelID) int {
	for i := range specs {
		if specs[i].ID == id {
			return i
		}
	}
	// DefaultCatalog содержит все ModelID
	panic("model missing from default catalog: " + id.String())
}
