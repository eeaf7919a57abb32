package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "qwen2.5-coder", cfg.Ollama.Model)
	assert.Equal(t, 60, cfg.Ollama.RequestsPerMinute)
	assert.Equal(t, int64(1<<20), cfg.Analysis.MaxFileSize)
	assert.Equal(t, 8000, cfg.Context.BudgetTokens)
	assert.Equal(t, 2000, cfg.Context.ChunkTokens)
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[ollama]
base_url = "http://remote:11434"
model = "llama3.2"
requests_per_minute = 30

[analysis]
exclude = ["**/dist/**"]
max_file_size = 524288

[context]
budget_tokens = 4000
chunk_tokens = 1000
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "http://remote:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3.2", cfg.Ollama.Model)
	assert.Equal(t, 30, cfg.Ollama.RequestsPerMinute)
	assert.Equal(t, []string{"**/dist/**"}, cfg.Analysis.Exclude)
	assert.Equal(t, int64(524288), cfg.Analysis.MaxFileSize)
	assert.Equal(t, 4000, cfg.Context.BudgetTokens)
	assert.Equal(t, 1000, cfg.Context.ChunkTokens)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tomlContent := `
[ollama]
model = "codellama"
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "codellama", cfg.Ollama.Model)
	// Fields not specified in TOML keep their defaults
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, 8000, cfg.Context.BudgetTokens)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5-coder", cfg.Ollama.Model)
	assert.Equal(t, 2000, cfg.Context.ChunkTokens)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[invalid toml..."), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}
