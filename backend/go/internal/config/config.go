package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic information about the running application.
type AppInfo struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// LoggerConfig controls the log level of the service.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig holds the HTTP listener settings and the request budget of
// the analysis endpoints.
type ServerConfig struct {
	Address       string  `yaml:"address"`
	RatePerSecond float64 `yaml:"ratePerSecond"`
	Burst         int     `yaml:"burst"`
}

// OpenAIConfig holds credentials and model selection for the OpenAI API.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"`
}

// OllamaConfig holds the endpoint and model selection for a local Ollama server.
type OllamaConfig struct {
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider string       `yaml:"provider"` // "openai" or "ollama"
	OpenAI   OpenAIConfig `yaml:"openai"`
	Ollama   OllamaConfig `yaml:"ollama"`
}

// EmbeddingConfig selects and configures the embedding model provider.
type EmbeddingConfig struct {
	Provider  string       `yaml:"provider"` // "openai" or "ollama"
	OpenAI    OpenAIConfig `yaml:"openai"`
	Ollama    OllamaConfig `yaml:"ollama"`
	Dimension int          `yaml:"dimension"`
}

// PostgresConfig holds the connection settings for the knowledge vault.
type PostgresConfig struct {
	Address      string `yaml:"address"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	SSLMode      string `yaml:"sslMode"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	Table        string `yaml:"table"`
}

// MySQLConfig holds the connection settings for the prompt catalog database.
type MySQLConfig struct {
	Address         string `yaml:"address"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	MaxOpenConns    int    `yaml:"maxOpenConns"`
	MaxIdleConns    int    `yaml:"maxIdleConns"`
	ConnMaxLifetime int    `yaml:"connMaxLifetime"` // seconds
}

// RedisConfig holds the connection settings for the embedding cache.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DatabaseConfigs groups every datastore the service talks to.
type DatabaseConfigs struct {
	Postgres PostgresConfig `yaml:"postgres"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Redis    RedisConfig    `yaml:"redis"`
}

// AnalysisConfig tunes the retrieval and orchestration behavior.
type AnalysisConfig struct {
	ChunkSize         int `yaml:"chunkSize"`
	ChunkOverlap      int `yaml:"chunkOverlap"`
	TopK              int `yaml:"topK"`
	MaxParallelCalls  int `yaml:"maxParallelCalls"`
	ModelTimeout      int `yaml:"modelTimeout"`      // seconds, per model call
	EmbeddingCacheTTL int `yaml:"embeddingCacheTTL"` // seconds
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Logger    LoggerConfig    `yaml:"logger"`
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Databases DatabaseConfigs `yaml:"databases"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
}

// LoadConfig reads and parses the YAML configuration file at the given path.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.RatePerSecond <= 0 {
		c.Server.RatePerSecond = 5
	}
	if c.Server.Burst <= 0 {
		c.Server.Burst = 10
	}
	if c.Analysis.ChunkSize <= 0 {
		c.Analysis.ChunkSize = 1000
	}
	if c.Analysis.ChunkOverlap < 0 {
		c.Analysis.ChunkOverlap = 0
	}
	if c.Analysis.TopK <= 0 {
		c.Analysis.TopK = 5
	}
	if c.Analysis.MaxParallelCalls <= 0 {
		c.Analysis.MaxParallelCalls = 4
	}
	if c.Analysis.ModelTimeout <= 0 {
		c.Analysis.ModelTimeout = 120
	}
	if c.Analysis.EmbeddingCacheTTL <= 0 {
		c.Analysis.EmbeddingCacheTTL = 3600
	}
	if c.Databases.Postgres.Table == "" {
		c.Databases.Postgres.Table = "vault_chunks"
	}
}
