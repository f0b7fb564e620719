package ai

import (
	"context"
	"math"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

// OpenAIClient — OpenAI-совместимый сервер (vLLM, TGI /v1, LocalAI и т.п.).
type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
	}
}

func (c *OpenAIClient) Name() string { return "openai" }

func (c *OpenAIClient) Generate(ctx context.Context, remoteName, prompt string, p ports.GenerationParams) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: remoteName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: p.MaxNewTokens,
	}

	if p.DoSample {
		req.Temperature = 1
		req.TopP = float32(p.TopP)
	} else {
		// жадное декодирование; ноль go-openai выбрасывает из JSON (omitempty)
		req.Temperature = math.SmallestNonzeroFloat32
	}

	// repetition_penalty 1.0 = без штрафа, у OpenAI шкала frequency_penalty [-2; 2]
	if p.RepetitionPenalty > 1 {
		fp := float32(p.RepetitionPenalty - 1)
		if fp > 2 {
			fp = 2
		}
		req.FrequencyPenalty = fp
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "openai chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Check(ctx context.Context, remoteName string) error {
	_, err := c.client.GetModel(ctx, remoteName)
	return errors.Wrap(err, "openai get model")
}
