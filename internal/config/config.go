package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// EmbeddingConfig selects and configures the embedding model client.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "ollama" or "openai"
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// GenerationConfig configures the chat-completion API client. The bearer
// token itself is never stored here, only the name of the environment
// variable holding it.
type GenerationConfig struct {
	BaseURL          string  `yaml:"base_url"`
	Model            string  `yaml:"model"`
	APIKeyEnv        string  `yaml:"api_key_env"`
	Temperature      float64 `yaml:"temperature"`
	AnswerMaxTokens  int     `yaml:"answer_max_tokens"`
	SummaryMaxTokens int     `yaml:"summary_max_tokens"`
}

// RAGConfig configures the retrieval pipeline.
type RAGConfig struct {
	ChunkSize     int `yaml:"chunk_size"`
	MinChunkChars int `yaml:"min_chunk_chars"`
	TopK          int `yaml:"top_k"`
}

type Config struct {
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	RAG        RAGConfig        `yaml:"rag"`
}

// Load reads the config from path. A missing file is not an error: the
// defaults are returned so the binary runs without any setup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "ollama"
	}
	if cfg.Embedding.BaseURL == "" && cfg.Embedding.Provider == "ollama" {
		cfg.Embedding.BaseURL = "http://localhost:11434"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "nomic-embed-text"
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Generation.BaseURL == "" {
		cfg.Generation.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "openai/gpt-4o-mini"
	}
	if cfg.Generation.APIKeyEnv == "" {
		cfg.Generation.APIKeyEnv = "OPENROUTER_API_KEY"
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.3
	}
	if cfg.Generation.AnswerMaxTokens == 0 {
		cfg.Generation.AnswerMaxTokens = 400
	}
	if cfg.Generation.SummaryMaxTokens == 0 {
		cfg.Generation.SummaryMaxTokens = 1200
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 350
	}
	if cfg.RAG.MinChunkChars == 0 {
		cfg.RAG.MinChunkChars = 150
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 3
	}
}
