package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	AI     AIConfig     `yaml:"ai" mapstructure:"ai"`
	Maps   MapsConfig   `yaml:"maps" mapstructure:"maps"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// AIConfig selects and configures the generative-AI provider. Features
// degrade to empty results when the selected provider has no key.
type AIConfig struct {
	Provider       string  `yaml:"provider" mapstructure:"provider"`
	GeminiKey      string  `yaml:"gemini_api_key" mapstructure:"gemini_api_key"`
	GeminiModel    string  `yaml:"gemini_model" mapstructure:"gemini_model"`
	AnalysisModel  string  `yaml:"gemini_analysis_model" mapstructure:"gemini_analysis_model"`
	AnthropicKey   string  `yaml:"anthropic_api_key" mapstructure:"anthropic_api_key"`
	AnthropicModel string  `yaml:"anthropic_model" mapstructure:"anthropic_model"`
	MaxTokens      int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	RatePerSec     float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst      int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// MapsConfig holds the optional mapping-provider key. Absence disables the
// Places coordinate backfill and the live map in the UI.
type MapsConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// StoreConfig configures the CRM persistence backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// SearchConfig configures the multi-strategy search.
type SearchConfig struct {
	DefaultCity string `yaml:"default_city" mapstructure:"default_city"`
	MinResults  int    `yaml:"min_results" mapstructure:"min_results"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ExportConfig configures result exports.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the local API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROSPECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini_model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini_analysis_model", "gemini-3-flash-preview")
	v.SetDefault("ai.anthropic_model", "claude-haiku-4-5-20251001")
	v.SetDefault("ai.max_tokens", 4096)
	v.SetDefault("ai.rate_per_sec", 2)
	v.SetDefault("ai.rate_burst", 3)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "prospector.db")
	v.SetDefault("search.default_city", "Paris")
	v.SetDefault("search.min_results", 5)
	v.SetDefault("search.timeout_secs", 90)
	v.SetDefault("export.dir", ".")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; env and defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
