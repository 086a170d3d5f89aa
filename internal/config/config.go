package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"docqa/internal/models"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"`
	Model   string `yaml:"model"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type Config struct {
	Server       ServerConfig `yaml:"server"`
	EmbedLLM     LLMConfig    `yaml:"embed_llm"`
	InferenceLLM LLMConfig    `yaml:"inference_llm"`
	RAG          RAGConfig    `yaml:"rag"`
	Fetch        FetchConfig  `yaml:"fetch"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = models.DefaultChunkSize
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = models.DefaultChunkOverlap
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = models.DefaultTopK
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 60
	}
}

// API keys come from the environment so they stay out of the config file.
func applyEnv(cfg *Config) {
	if key := os.Getenv("OPENROUTER_KEY"); key != "" {
		cfg.EmbedLLM.Key = key
		cfg.InferenceLLM.Key = key
	}
	if key := os.Getenv("EMBED_LLM_KEY"); key != "" {
		cfg.EmbedLLM.Key = key
	}
	if key := os.Getenv("INFERENCE_LLM_KEY"); key != "" {
		cfg.InferenceLLM.Key = key
	}
}
