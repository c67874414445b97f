// ABOUTME: Configuration management with viper, environment variables and an optional file
// ABOUTME: Defines every tunable of the newsletter service with its default

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides for keys without a dedicated variable,
// e.g. NEWSLETTER_PIPELINE_MAX_QUERIES
const EnvPrefix = "NEWSLETTER"

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Search     SearchConfig     `mapstructure:"search"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Render     RenderConfig     `mapstructure:"render"`
	Pacing     PacingConfig     `mapstructure:"pacing"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Features   FeaturesConfig   `mapstructure:"features"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RateLimit is the number of requests per minute allowed per client IP
	RateLimit int `mapstructure:"rate_limit"`
	RateBurst int `mapstructure:"rate_burst"`
}

// SearchConfig holds Brave Search settings
type SearchConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// SummarizerConfig holds the text generation provider settings
type SummarizerConfig struct {
	Provider     string        `mapstructure:"provider"`
	APIKey       string        `mapstructure:"api_key"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxTokens    int           `mapstructure:"max_tokens"`
}

// TranslatorConfig holds DeepL settings
type TranslatorConfig struct {
	DeepLAPIKey string        `mapstructure:"deepl_api_key"`
	DeepLURL    string        `mapstructure:"deepl_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// PipelineConfig bounds the search fan-out and enrichment
type PipelineConfig struct {
	MaxQueries       int `mapstructure:"max_queries"`
	QueryResultCount int `mapstructure:"query_result_count"`
	MaxSiteDomains   int `mapstructure:"max_site_domains"`
	SiteResultCount  int `mapstructure:"site_result_count"`
	NewsResultCount  int `mapstructure:"news_result_count"`
	ResultLimit      int `mapstructure:"result_limit"`
	EnrichLimit      int `mapstructure:"enrich_limit"`
}

// RenderConfig caps the newsletter sections
type RenderConfig struct {
	MainCap          int `mapstructure:"main_cap"`
	SupplementaryCap int `mapstructure:"supplementary_cap"`
}

// PacingConfig holds the minimum interval between upstream calls
type PacingConfig struct {
	Search    time.Duration `mapstructure:"search"`
	Summary   time.Duration `mapstructure:"summary"`
	Translate time.Duration `mapstructure:"translate"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (none/memory/redis/sqlite)
	Type string `mapstructure:"type"`

	SearchTTL  time.Duration `mapstructure:"search_ttl"`
	ExcerptTTL time.Duration `mapstructure:"excerpt_ttl"`

	Redis  RedisConfig  `mapstructure:"redis"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// Prefix namespaces every key
	Prefix string `mapstructure:"prefix"`
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// FeaturesConfig holds feature flag defaults; FEATURE_* variables override them
type FeaturesConfig struct {
	AISummaries  bool `mapstructure:"ai_summaries"`
	PageExcerpts bool `mapstructure:"page_excerpts"`
	Metrics      bool `mapstructure:"metrics"`
	RateLimit    bool `mapstructure:"rate_limit"`
}

var defaults = map[string]interface{}{
	"server.port":             "3000",
	"server.environment":      "development",
	"server.read_timeout":     15 * time.Second,
	"server.write_timeout":    120 * time.Second,
	"server.shutdown_timeout": 15 * time.Second,
	"server.rate_limit":       30,
	"server.rate_burst":       10,

	"search.api_key":  "",
	"search.base_url": "https://api.search.brave.com",
	"search.language": "fr",
	"search.timeout":  10 * time.Second,

	"summarizer.provider":       "anthropic",
	"summarizer.api_key":        "",
	"summarizer.openai_api_key": "",
	"summarizer.model":          "",
	"summarizer.base_url":       "",
	"summarizer.timeout":        10 * time.Second,
	"summarizer.max_tokens":     200,

	"translator.deepl_api_key": "",
	"translator.deepl_url":     "https://api-free.deepl.com/v2/translate",
	"translator.timeout":       15 * time.Second,

	"pipeline.max_queries":        4,
	"pipeline.query_result_count": 8,
	"pipeline.max_site_domains":   5,
	"pipeline.site_result_count":  5,
	"pipeline.news_result_count":  10,
	"pipeline.result_limit":       25,
	"pipeline.enrich_limit":       15,

	"render.main_cap":          6,
	"render.supplementary_cap": 12,

	"pacing.search":    1200 * time.Millisecond,
	"pacing.summary":   500 * time.Millisecond,
	"pacing.translate": 300 * time.Millisecond,

	"cache.type":           "none",
	"cache.search_ttl":     15 * time.Minute,
	"cache.excerpt_ttl":    time.Hour,
	"cache.redis.address":  "localhost:6379",
	"cache.redis.password": "",
	"cache.redis.db":       0,
	"cache.redis.prefix":   "newsletter:",
	"cache.sqlite.path":    "cache.db",

	"logging.level":        "info",
	"logging.format":       "json",
	"logging.file":         "",
	"logging.max_size_mb":  100,
	"logging.max_backups":  3,
	"logging.max_age_days": 28,
	"logging.compress":     true,

	"features.ai_summaries":  true,
	"features.page_excerpts": false,
	"features.metrics":       true,
	"features.rate_limit":    true,
}

// envAliases maps config keys to the plain variables deployments already set.
// The first variable that is set wins.
var envAliases = map[string][]string{
	"server.port":               {"PORT"},
	"server.environment":        {"ENVIRONMENT", "VERCEL_ENV"},
	"search.api_key":            {"BRAVE_API_KEY"},
	"summarizer.provider":       {"SUMMARIZER_PROVIDER"},
	"summarizer.api_key":        {"ANTHROPIC_API_KEY"},
	"summarizer.openai_api_key": {"OPENAI_API_KEY"},
	"summarizer.model":          {"SUMMARIZER_MODEL"},
	"translator.deepl_api_key":  {"DEEPL_API_KEY"},
	"translator.deepl_url":      {"DEEPL_API_URL"},
	"cache.type":                {"CACHE_TYPE"},
	"cache.redis.address":       {"REDIS_ADDRESS"},
	"cache.redis.password":      {"REDIS_PASSWORD"},
	"cache.redis.db":            {"REDIS_DB"},
	"cache.sqlite.path":         {"SQLITE_PATH"},
	"logging.level":             {"LOG_LEVEL"},
	"logging.format":            {"LOG_FORMAT"},
	"logging.file":              {"LOG_FILE"},
}

// Load reads configuration from defaults, an optional file and the environment.
// An empty path skips the file; a non-empty path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range envAliases {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Summarizer.Provider = strings.ToLower(strings.TrimSpace(cfg.Summarizer.Provider))
	cfg.Cache.Type = strings.ToLower(strings.TrimSpace(cfg.Cache.Type))

	return &cfg, nil
}

// LoadFromEnv loads configuration from the environment only
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// SummarizerKey returns the credential of the selected provider
func (c *Config) SummarizerKey() string {
	if c.Summarizer.Provider == "openai" {
		return c.Summarizer.OpenAIAPIKey
	}
	return c.Summarizer.APIKey
}

// Validate checks if the configuration is valid. A missing search key is
// not an error: the server starts and reports it through the health check.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Summarizer.Provider {
	case "", "anthropic", "claude", "openai":
	default:
		return fmt.Errorf("summarizer provider must be 'anthropic' or 'openai', got %q", c.Summarizer.Provider)
	}

	switch c.Cache.Type {
	case "none", "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'none', 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	positive := map[string]int{
		"pipeline.max_queries":        c.Pipeline.MaxQueries,
		"pipeline.query_result_count": c.Pipeline.QueryResultCount,
		"pipeline.news_result_count":  c.Pipeline.NewsResultCount,
		"pipeline.result_limit":       c.Pipeline.ResultLimit,
		"pipeline.enrich_limit":       c.Pipeline.EnrichLimit,
		"render.main_cap":             c.Render.MainCap,
		"render.supplementary_cap":    c.Render.SupplementaryCap,
	}
	for key, value := range positive {
		if value < 1 {
			return fmt.Errorf("%s must be at least 1", key)
		}
	}

	if c.Pacing.Search < 0 || c.Pacing.Summary < 0 || c.Pacing.Translate < 0 {
		return errors.New("pacing intervals cannot be negative")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return errors.New("logging format must be 'json' or 'text'")
	}

	return nil
}
