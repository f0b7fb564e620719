package ai

import (
	"fmt"
	"strings"
)

type BackendOptions struct {
	HFBaseURL     string
	HFToken       string
	OpenAIKey     string
	OpenAIBaseURL string
}

// NewBackend выбирает бэкенд инференса по имени: hf | openai | ollama.
func NewBackend(name string, o BackendOptions) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hf", "huggingface":
		return NewHFClient(o.HFBaseURL, o.HFToken), nil
	case "openai":
		return NewOpenAIClient(o.OpenAIKey, o.OpenAIBaseURL), nil
	case "ollama":
		return NewOllamaClient()
	}
	return nil, fmt.Errorf("unknown inference backend: %s", name)
}
