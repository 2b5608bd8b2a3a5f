package model

import "time"

// Config is the full runtime configuration, assembled from defaults, the
// config file, INKWELL_* environment variables, and CLI flags.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Compliance  ComplianceConfig  `yaml:"compliance" json:"compliance"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Platforms   []string          `yaml:"platforms" json:"platforms"`
}

// LLMConfig configures the content-generation provider.
type LLMConfig struct {
	Provider          string  `yaml:"provider" json:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model             string  `yaml:"model" json:"model"`
	APIKey            string  `yaml:"-" json:"-"` // from env only, never persisted
	BaseURL           string  `yaml:"base_url" json:"base_url,omitempty"`
	Timeout           int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	Temperature       float64 `yaml:"temperature" json:"temperature"`
	MaxTokens         int     `yaml:"max_tokens" json:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
}

// ComplianceConfig configures the revision loop.
type ComplianceConfig struct {
	MaxRevisions    int     `yaml:"max_revisions" json:"max_revisions"`
	MinAuthenticity float64 `yaml:"min_authenticity" json:"min_authenticity"`
}

// CacheConfig configures the LLM response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// ConcurrencyConfig bounds the parallel parts of a run.
type ConcurrencyConfig struct {
	EvalWorkers  int `yaml:"eval_workers" json:"eval_workers"`
	BatchWorkers int `yaml:"batch_workers" json:"batch_workers"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "",
			Model:             "",
			Timeout:           60,
			Temperature:       0.7,
			MaxTokens:         2000,
			RequestsPerSecond: 1,
		},
		Compliance: ComplianceConfig{
			MaxRevisions:    5,
			MinAuthenticity: 80,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.inkwell/cache at startup
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			EvalWorkers:  4,
			BatchWorkers: 2,
		},
		Platforms: []string{"email", "linkedin", "instagram", "twitter", "reddit", "blog"},
	}
}
