package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration. One value is constructed in main
// and passed explicitly to every component; there are no process-wide
// singletons.
type Config struct {
	LLM    LLMConfig
	Search SearchConfig
	Paths  PathsConfig
	Log    LogConfig
}

// LLMConfig holds completion backend configuration.
type LLMConfig struct {
	BaseURL     string  `envconfig:"LLM_BASE_URL" default:"http://localhost:11434/v1"`
	APIKey      string  `envconfig:"LLM_API_KEY" default:"ollama"`
	Model       string  `envconfig:"LLM_MODEL" default:"qwen2.5:32b"`
	Temperature float64 `envconfig:"LLM_TEMPERATURE" default:"0.1"`
	MaxTokens   int     `envconfig:"LLM_MAX_TOKENS" default:"2000"`
	// StrictParse aborts on a malformed backend reply instead of repairing
	// missing sub-tags and falling back to an empty result.
	StrictParse bool `envconfig:"LLM_STRICT_PARSE" default:"false"`
}

// SearchConfig holds search backend configuration.
type SearchConfig struct {
	BaseURL    string `envconfig:"SEARCH_BASE_URL" default:"https://api.tavily.com"`
	APIKey     string `envconfig:"TAVILY_API_KEY"`
	MaxResults int    `envconfig:"SEARCH_MAX_RESULTS" default:"3"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	TranscriptsDir string `envconfig:"TRANSCRIPTS_DIR" default:"transcripts"`
	OutputDir      string `envconfig:"OUTPUT_DIR" default:"output"`
	ResearchDir    string `envconfig:"RESEARCH_OUTPUT_DIR" default:"research_output"`
	HistoryDB      string `envconfig:"HISTORY_DB" default:"insights_history.db"`
	// TaxonomyFile overrides the embedded category tag sets when non-empty.
	TaxonomyFile string `envconfig:"TAXONOMY_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// Load loads configuration from the environment, reading a .env file first
// when one exists.
func Load() (*Config, error) {
	// Ignore a missing .env; plain environment variables still apply.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("insights", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be in [0, 2], got %v", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be positive, got %d", c.Search.MaxResults)
	}
	return nil
}
