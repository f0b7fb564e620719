package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

const DefaultHFBaseURL = "https://api-inference.huggingface.co"

// HFClient — Hugging Face Inference API (или совместимый TGI-шлюз).
type HFClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHFClient(baseURL, token string) *HFClient {
	if baseURL == "" {
		baseURL = DefaultHFBaseURL
	}
	return &HFClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		// общий таймаут задаёт вызывающий через ctx
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *HFClient) Name() string { return "hf" }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxNewTokens      int     `json:"max_new_tokens"`
	NumBeams          int     `json:"num_beams,omitempty"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
	EarlyStopping     bool    `json:"early_stopping,omitempty"`
	DoSample          bool    `json:"do_sample"`
	TopP              float64 `json:"top_p,omitempty"`
	TopK              int     `json:"top_k,omitempty"`
	ReturnFullText    bool    `json:"return_full_text"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type hfGenerated struct {
	GeneratedText string `json:"generated_text"`
}

func (c *HFClient) Generate(ctx context.Context, remoteName, prompt string, p ports.GenerationParams) (string, error) {
	body := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:      p.MaxNewTokens,
			NumBeams:          p.NumBeams,
			RepetitionPenalty: p.RepetitionPenalty,
			EarlyStopping:     p.EarlyStopping,
			DoSample:          p.DoSample,
			TopP:              p.TopP,
			TopK:              p.TopK,
		},
		Options: hfOptions{WaitForModel: true},
	}

	raw, err := c.post(ctx, remoteName, body)
	if err != nil {
		return "", err
	}

	// text-generation отдаёт массив, text2text иногда одиночный объект
	var list []hfGenerated
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", nil
		}
		return list[0].GeneratedText, nil
	}

	var one hfGenerated
	if err := json.Unmarshal(raw, &one); err != nil {
		return "", errors.Wrap(err, "decode hf response")
	}
	return one.GeneratedText, nil
}

// Check гоняет генерацию в один токен: так HF заодно поднимает модель.
func (c *HFClient) Check(ctx context.Context, remoteName string) error {
	_, err := c.post(ctx, remoteName, hfRequest{
		Inputs:     "ping",
		Parameters: hfParameters{MaxNewTokens: 1},
		Options:    hfOptions{WaitForModel: true, UseCache: true},
	})
	return err
}

func (c *HFClient) post(ctx context.Context, remoteName string, body hfRequest) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/models/"+remoteName,
		bytes.NewReader(b),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "hf request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read hf response")
	}

	if resp.StatusCode >= 400 {
		return nil, hfError(resp.StatusCode, data)
	}
	return data, nil
}

// hfError вытаскивает текст ошибки из {"error": "..."} или {"error": ["..."]}, иначе код HTTP.
func hfError(status int, data []byte) error {
	var e struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &e); err == nil && len(e.Error) > 0 {
		var s string
		if json.Unmarshal(e.Error, &s) == nil && strings.TrimSpace(s) != "" {
			return fmt.Errorf("hf http %d: %s", status, strings.TrimSpace(s))
		}
		var list []string
		if json.Unmarshal(e.Error, &list) == nil && len(list) > 0 {
			return fmt.Errorf("hf http %d: %s", status, strings.Join(list, "; "))
		}
	}

	if msg := strings.TrimSpace(string(data)); msg != "" {
		return fmt.Errorf("hf http %d: %s", status, msg)
	}
	return fmt.Errorf("hf http %d", status)
}
