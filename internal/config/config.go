package config

import (
	"os"
	"strconv"
	"time"

	"agentmgr/domain/stats"
	"agentmgr/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	OpsPort string // health/meta sub-app
	GinMode string
}

// DatabaseConfig holds the optional Postgres settings. When URL is empty the
// application runs on the in-memory store.
type DatabaseConfig struct {
	URL string
}

// AIConfig holds the optional AI backend settings. When APIKey is empty all
// reports come from the deterministic synthesizer.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Enabled reports whether the AI backend should be used
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// AnalysisConfig holds the statistics and synthesis heuristics. These are
// product thresholds carried over from the source system, kept configurable.
type AnalysisConfig struct {
	NumericRatio           float64
	CategoricalUniqueRatio float64
	CategoricalUniqueMax   int
	TopCategoryLimit       int
	ChartRowLimit          int
	PieCategoryLimit       int
	CorrelationMin         float64
}

// ClassifierConfig converts the analysis settings to the engine's config type
func (c AnalysisConfig) ClassifierConfig() stats.ClassifierConfig {
	return stats.ClassifierConfig{
		NumericRatio:           c.NumericRatio,
		CategoricalUniqueRatio: c.CategoricalUniqueRatio,
		CategoricalUniqueMax:   c.CategoricalUniqueMax,
		TopCategoryLimit:       c.TopCategoryLimit,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	defaults := stats.DefaultClassifierConfig()

	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			OpsPort: getEnvOrDefault("OPS_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		AI: AIConfig{
			APIKey:      getEnvOrDefault("OPENAI_API_KEY", ""),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.7),
			MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 2000),
			Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		},
		Analysis: AnalysisConfig{
			NumericRatio:           getEnvFloatOrDefault("NUMERIC_RATIO", defaults.NumericRatio),
			CategoricalUniqueRatio: getEnvFloatOrDefault("CATEGORICAL_UNIQUE_RATIO", defaults.CategoricalUniqueRatio),
			CategoricalUniqueMax:   getEnvIntOrDefault("CATEGORICAL_UNIQUE_MAX", defaults.CategoricalUniqueMax),
			TopCategoryLimit:       getEnvIntOrDefault("TOP_CATEGORY_LIMIT", defaults.TopCategoryLimit),
			ChartRowLimit:          getEnvIntOrDefault("CHART_ROW_LIMIT", 10),
			PieCategoryLimit:       getEnvIntOrDefault("PIE_CATEGORY_LIMIT", 5),
			CorrelationMin:         getEnvFloatOrDefault("CORRELATION_MIN", 0.3),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.NumericRatio <= 0 || config.Analysis.NumericRatio >= 1 {
		return errors.ConfigInvalid("NUMERIC_RATIO must be between 0 and 1")
	}
	if config.Analysis.CategoricalUniqueRatio <= 0 || config.Analysis.CategoricalUniqueRatio >= 1 {
		return errors.ConfigInvalid("CATEGORICAL_UNIQUE_RATIO must be between 0 and 1")
	}
	if config.Analysis.CategoricalUniqueMax < 0 {
		return errors.ConfigInvalid("CATEGORICAL_UNIQUE_MAX cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
