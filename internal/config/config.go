package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Feeds               []string  `yaml:"feeds"`
	Schedule            string    `yaml:"schedule"`
	MaxArticlesPerFeed  int       `yaml:"max_articles_per_feed"`
	MaxSummarySentences int       `yaml:"max_summary_sentences"`
	RunOnStart          bool      `yaml:"run_on_start"`
	OutputDir           string    `yaml:"output_dir"`
	StateFile           string    `yaml:"state_file"`
	FetchTimeoutSeconds int       `yaml:"fetch_timeout_seconds"`
	TTS                 TTSConfig `yaml:"tts"`
}

type TTSConfig struct {
	Engine   string `yaml:"engine"`
	Language string `yaml:"language"`
}

// FetchTimeout returns the configured HTTP timeout for feed and article
// downloads.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Unbounded reports whether the per-feed article cap is disabled
// (max_articles_per_feed: -1).
func (c *Config) Unbounded() bool {
	return c.MaxArticlesPerFeed < 0
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 * * * *"
	}
	if cfg.MaxArticlesPerFeed == 0 {
		cfg.MaxArticlesPerFeed = 3
	}
	if cfg.MaxSummarySentences == 0 {
		cfg.MaxSummarySentences = 5
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "state.json"
	}
	if cfg.FetchTimeoutSeconds == 0 {
		cfg.FetchTimeoutSeconds = 30
	}
	if cfg.TTS.Engine == "" {
		cfg.TTS.Engine = "gtts"
	}
	if cfg.TTS.Language == "" {
		cfg.TTS.Language = "en"
	}
}

func validate(cfg *Config) error {
	if len(cfg.Feeds) == 0 {
		return fmt.Errorf("config: at least one feed URL is required")
	}
	for _, u := range cfg.Feeds {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("config: feeds must not contain empty URLs")
		}
	}
	if cfg.MaxArticlesPerFeed < -1 {
		return fmt.Errorf("config: max_articles_per_feed must be -1 (unbounded) or positive, got %d", cfg.MaxArticlesPerFeed)
	}
	if cfg.MaxSummarySentences < 0 {
		return fmt.Errorf("config: max_summary_sentences must not be negative, got %d", cfg.MaxSummarySentences)
	}
	if cfg.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("config: fetch_timeout_seconds must be at least 1, got %d", cfg.FetchTimeoutSeconds)
	}
	return nil
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
