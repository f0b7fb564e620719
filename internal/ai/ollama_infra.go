package ai

import (
	"context"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/pkg/errors"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

// OllamaClient — локальный Ollama, адрес берётся из OLLAMA_HOST.
type OllamaClient struct {
	client *api.Client
}

func NewOllamaClient() (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, errors.Wrap(err, "create ollama client")
	}
	return &OllamaClient{client: client}, nil
}

func (c *OllamaClient) Name() string { return "ollama" }

func (c *OllamaClient) Generate(ctx context.Context, remoteName, prompt string, p ports.GenerationParams) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:   remoteName,
		Prompt:  prompt,
		Stream:  &stream,
		Options: ollamaOptions(p),
	}

	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "ollama generate")
	}
	return out.String(), nil
}

func (c *OllamaClient) Check(ctx context.Context, remoteName string) error {
	_, err := c.client.Show(ctx, &api.ShowRequest{Model: remoteName})
	return errors.Wrap(err, "ollama show")
}

func ollamaOptions(p ports.GenerationParams) map[string]any {
	opts := map[string]any{
		"num_predict": p.MaxNewTokens,
	}
	if p.DoSample {
		if p.TopP > 0 {
			opts["top_p"] = p.TopP
		}
		if p.TopK > 0 {
			opts["top_k"] = p.TopK
		}
	} else {
		opts["temperature"] = 0
	}
	if p.RepetitionPenalty > 0 {
		opts["repeat_penalty"] = p.RepetitionPenalty
	}
	return opts
}
