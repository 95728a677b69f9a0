// Package config handles FounderLink configuration.
// Values come from an optional YAML file, overridden by FOUNDERLINK_*
// environment variables.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration
type Config struct {
	// Paths
	DataDir string `mapstructure:"data_dir"`

	// Server
	Server ServerConfig `mapstructure:"server"`

	// Services
	Qdrant   QdrantConfig   `mapstructure:"qdrant"`
	Embed    EmbedConfig    `mapstructure:"embed"`
	Feedback FeedbackConfig `mapstructure:"feedback"`

	// Engine tuning
	Matching MatchingConfig `mapstructure:"matching"`
}

// ServerConfig for the HTTP server
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// QdrantConfig for the vector database
type QdrantConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	UseTLS bool   `mapstructure:"use_tls"`
}

// EmbedConfig for the embedding service
type EmbedConfig struct {
	URL     string        `mapstructure:"url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FeedbackConfig for the external learning-feedback sink
type FeedbackConfig struct {
	URL     string        `mapstructure:"url"`
	AgentID string        `mapstructure:"agent_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MatchingConfig tunes the suggestion pipeline
type MatchingConfig struct {
	SearchLimit     int           `mapstructure:"search_limit"`
	MinSimilarity   float64       `mapstructure:"min_similarity"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultMinScore float64       `mapstructure:"default_min_score"`
	SearchTimeout   time.Duration `mapstructure:"search_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	CacheSize       int           `mapstructure:"cache_size"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		DataDir: "data",
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
		Embed: EmbedConfig{
			URL:     "http://localhost:11434",
			Model:   "nomic-embed-text",
			Timeout: 30 * time.Second,
		},
		Feedback: FeedbackConfig{
			AgentID: "founderlink-matcher",
			Timeout: 5 * time.Second,
		},
		Matching: MatchingConfig{
			SearchLimit:     50,
			MinSimilarity:   0.6,
			DefaultLimit:    10,
			DefaultMinScore: 0.5,
			SearchTimeout:   10 * time.Second,
			CacheTTL:        5 * time.Minute,
			CacheSize:       1024,
		},
	}
}

// Load reads configuration from the given file (optional) and the
// environment, on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("qdrant.host", defaults.Qdrant.Host)
	v.SetDefault("qdrant.port", defaults.Qdrant.Port)
	v.SetDefault("qdrant.use_tls", defaults.Qdrant.UseTLS)
	v.SetDefault("embed.url", defaults.Embed.URL)
	v.SetDefault("embed.model", defaults.Embed.Model)
	v.SetDefault("embed.timeout", defaults.Embed.Timeout)
	v.SetDefault("feedback.url", defaults.Feedback.URL)
	v.SetDefault("feedback.agent_id", defaults.Feedback.AgentID)
	v.SetDefault("feedback.timeout", defaults.Feedback.Timeout)
	v.SetDefault("matching.search_limit", defaults.Matching.SearchLimit)
	v.SetDefault("matching.min_similarity", defaults.Matching.MinSimilarity)
	v.SetDefault("matching.default_limit", defaults.Matching.DefaultLimit)
	v.SetDefault("matching.default_min_score", defaults.Matching.DefaultMinScore)
	v.SetDefault("matching.search_timeout", defaults.Matching.SearchTimeout)
	v.SetDefault("matching.cache_ttl", defaults.Matching.CacheTTL)
	v.SetDefault("matching.cache_size", defaults.Matching.CacheSize)

	v.SetEnvPrefix("FOUNDERLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
