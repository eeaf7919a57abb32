package config

// Config represents the top-level application configuration.
type Config struct {
	Ollama   OllamaConfig   `toml:"ollama"`
	Analysis AnalysisConfig `toml:"analysis"`
	Context  ContextConfig  `toml:"context"`
}

// OllamaConfig holds settings for the local Ollama server.
type OllamaConfig struct {
	BaseURL           string `toml:"base_url"`
	Model             string `toml:"model"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// AnalysisConfig holds settings for project discovery and file analysis.
type AnalysisConfig struct {
	Exclude     []string `toml:"exclude"`
	MaxFileSize int64    `toml:"max_file_size"`
}

// ContextConfig holds the token budgets used when sending file content to
// the model.
type ContextConfig struct {
	BudgetTokens int `toml:"budget_tokens"`
	ChunkTokens  int `toml:"chunk_tokens"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL:           "http://localhost:11434",
			Model:             "qwen2.5-coder",
			RequestsPerMinute: 60,
		},
		Analysis: AnalysisConfig{
			Exclude:     []string{"**/node_modules/**", "**/vendor/**", "**/.git/**"},
			MaxFileSize: 1 << 20,
		},
		Context: ContextConfig{
			BudgetTokens: 8000,
			ChunkTokens:  2000,
		},
	}
}
