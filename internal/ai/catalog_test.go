package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

func TestLoadCatalogDefaults(t *testing.T) {
	specs, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), specs)
}

func TestLoadCatalogOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
models:
  dialogpt:
    remote_name: dialogpt:latest
  model_mt5:
    prompt_prefix: ""
    params:
      max_new_tokens: 64
      top_p: 0.8
      do_sample: true
`), 0o644))

	specs, err := LoadCatalog(path)
	require.NoError(t, err)

	byID := map[ports.ModelID]ports.ModelSpec{}
	for _, s := range specs {
		byID[s.ID] = s
	}

	assert.Equal(t, "facebook/blenderbot-90M", byID[ports.ModelBlender].RemoteName)
	assert.Equal(t, "dialogpt:latest", byID[ports.ModelDialoGPT].RemoteName)
	assert.True(t, byID[ports.ModelDialoGPT].Params.PadWithEOS, "params untouched without override")

	mt5 := byID[ports.ModelMT5]
	assert.Equal(t, "", mt5.PromptPrefix)
	assert.Equal(t, 64, mt5.Params.MaxNewTokens)
	assert.Equal(t, 0.8, mt5.Params.TopP)
	assert.Zero(t, mt5.Params.NumBeams)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read models file")

	_, err = applyCatalog(DefaultCatalog(), []byte("models:\n  gpt2:\n    remote_name: gpt2\n"))
	assert.ErrorContains(t, err, "unknown model")

	_, err = applyCatalog(DefaultCatalog(), []byte("models:\n  mt5:\n    params:\n      top_p: 0.5\n"))
	assert.ErrorContains(t, err, "max_new_tokens")

	_, err = applyCatalog(DefaultCatalog(), []byte("models: [1, 2"))
	assert.ErrorContains(t, err, "decode models file")
}
