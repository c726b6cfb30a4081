package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the resume optimizer configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings for the single-page UI.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxUploadBytes  int64 `yaml:"max_upload_bytes"`
}

// ScoringConfig holds the score blend and keyword filtering settings.
type ScoringConfig struct {
	KeywordWeight  float64  `yaml:"keyword_weight"`
	SemanticWeight float64  `yaml:"semantic_weight"`
	MinKeywordLen  int      `yaml:"min_keyword_len"`
	FluffWords     []string `yaml:"fluff_words"`
}

// EmbeddingConfig holds embedding settings.
type EmbeddingConfig struct {
	Provider   string                    `yaml:"provider"` // local, openai (default: local)
	Model      string                    `yaml:"model"`
	Dimensions int                       `yaml:"dimensions"`
	CacheDir   string                    `yaml:"cache_dir"` // where model artifacts are downloaded
	Providers  map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig holds remote embedding provider settings.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// DefaultFluffWords are generic resume terms excluded from keyword matching.
var DefaultFluffWords = []string{
	"team", "work", "skills", "experience", "role", "time",
	"services", "solutions", "environment", "player", "motivated",
	"opportunity", "ability", "responsibilities",
	// job-title nouns: they name the position, not a skill
	"engineer", "engineers", "developer", "developers", "candidate", "candidates",
}

// DefaultModel is the sentence embedding model fetched on first run.
const DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"

// DefaultDimensions is the output dimension of DefaultModel.
const DefaultDimensions = 384

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Embedding a long resume on CPU can take a while.
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		c.HTTP.MaxUploadBytes = 10 << 20
	}
	if c.Scoring.KeywordWeight == 0 && c.Scoring.SemanticWeight == 0 {
		c.Scoring.KeywordWeight = 0.6
		c.Scoring.SemanticWeight = 0.4
	}
	if c.Scoring.MinKeywordLen <= 0 {
		c.Scoring.MinKeywordLen = 3
	}
	if len(c.Scoring.FluffWords) == 0 {
		c.Scoring.FluffWords = append([]string(nil), DefaultFluffWords...)
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "local"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = DefaultModel
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = DefaultDimensions
	}
	if c.Embedding.CacheDir == "" {
		c.Embedding.CacheDir = defaultCacheDir()
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Scoring.KeywordWeight < 0 || c.Scoring.SemanticWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative, got keyword=%v semantic=%v",
			c.Scoring.KeywordWeight, c.Scoring.SemanticWeight)
	}
	if sum := c.Scoring.KeywordWeight + c.Scoring.SemanticWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring weights must sum to 1, got %v", sum)
	}
	switch c.Embedding.Provider {
	case "local":
		// model artifact fetched on first use, nothing to check up front
	case "openai":
		p, ok := c.Embedding.Providers["openai"]
		if !ok || p.APIKey == "" {
			return fmt.Errorf("embedding.providers.openai.api_key is required when embedding.provider is \"openai\"")
		}
	default:
		return fmt.Errorf("embedding.provider must be \"local\" or \"openai\", got %q", c.Embedding.Provider)
	}
	return nil
}

// Weights returns the configured score blend.
func (c *Config) Weights() (keyword, semantic float64) {
	return c.Scoring.KeywordWeight, c.Scoring.SemanticWeight
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ats-resume-optimizer", "models")
	}
	return filepath.Join("models")
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// expandEnvVars substitutes ${VAR} references with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.TrimSuffix(strings.TrimPrefix(string(match), "${"), "}")
		return []byte(os.Getenv(name))
	})
}
