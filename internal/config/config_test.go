package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - https://feeds.bbci.co.uk/news/world/rss.xml
  - https://feeds.npr.org/1004/rss.xml
schedule: "*/30 * * * *"
max_articles_per_feed: 5
max_summary_sentences: 3
output_dir: /var/lib/newscast/output
state_file: /var/lib/newscast/state.json
tts:
  engine: gtts
  language: es
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.Feeds) != 2 {
		t.Fatalf("Expected 2 feeds, got %d", len(cfg.Feeds))
	}
	if cfg.Feeds[0] != "https://feeds.bbci.co.uk/news/world/rss.xml" {
		t.Errorf("Unexpected first feed: %q", cfg.Feeds[0])
	}
	if cfg.Schedule != "*/30 * * * *" {
		t.Errorf("Expected schedule '*/30 * * * *', got %q", cfg.Schedule)
	}
	if cfg.MaxArticlesPerFeed != 5 {
		t.Errorf("Expected cap 5, got %d", cfg.MaxArticlesPerFeed)
	}
	if cfg.MaxSummarySentences != 3 {
		t.Errorf("Expected 3 summary sentences, got %d", cfg.MaxSummarySentences)
	}
	if cfg.TTS.Engine != "gtts" || cfg.TTS.Language != "es" {
		t.Errorf("Unexpected tts config: %+v", cfg.TTS)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - https://example.com/rss.xml
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Schedule != "0 * * * *" {
		t.Errorf("Expected default hourly schedule, got %q", cfg.Schedule)
	}
	if cfg.MaxArticlesPerFeed != 3 {
		t.Errorf("Expected default cap 3, got %d", cfg.MaxArticlesPerFeed)
	}
	if cfg.MaxSummarySentences != 5 {
		t.Errorf("Expected default 5 sentences, got %d", cfg.MaxSummarySentences)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("Expected default output dir, got %q", cfg.OutputDir)
	}
	if cfg.StateFile != "state.json" {
		t.Errorf("Expected default state file, got %q", cfg.StateFile)
	}
	if cfg.TTS.Engine != "gtts" || cfg.TTS.Language != "en" {
		t.Errorf("Unexpected tts defaults: %+v", cfg.TTS)
	}
	if cfg.FetchTimeout() != 30*time.Second {
		t.Errorf("Expected 30s fetch timeout, got %v", cfg.FetchTimeout())
	}
	if cfg.Unbounded() {
		t.Error("Expected default cap to be bounded")
	}
}

func TestLoadConfigUnboundedCap(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - https://example.com/rss.xml
max_articles_per_feed: -1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.Unbounded() {
		t.Error("Expected -1 to disable the per-feed cap")
	}
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("NEWSCAST_STATE_DIR", "/tmp/newscast")

	path := writeConfig(t, `
feeds:
  - https://example.com/rss.xml
state_file: ${NEWSCAST_STATE_DIR}/state.json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.StateFile != "/tmp/newscast/state.json" {
		t.Errorf("Expected env-expanded state file, got %q", cfg.StateFile)
	}
}

func TestLoadConfigUnsetEnvVarLeftVerbatim(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - https://example.com/rss.xml
output_dir: ${NEWSCAST_DEFINITELY_UNSET}/out
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.OutputDir != "${NEWSCAST_DEFINITELY_UNSET}/out" {
		t.Errorf("Expected unset var left verbatim, got %q", cfg.OutputDir)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no feeds",
			content: `schedule: "0 * * * *"`,
			wantErr: "at least one feed",
		},
		{
			name: "empty feed URL",
			content: `
feeds:
  - ""
`,
			wantErr: "empty URLs",
		},
		{
			name: "invalid cap",
			content: `
feeds:
  - https://example.com/rss.xml
max_articles_per_feed: -2
`,
			wantErr: "max_articles_per_feed",
		},
		{
			name: "negative summary sentences",
			content: `
feeds:
  - https://example.com/rss.xml
max_summary_sentences: -1
`,
			wantErr: "max_summary_sentences",
		},
		{
			name: "bad fetch timeout",
			content: `
feeds:
  - https://example.com/rss.xml
fetch_timeout_seconds: -5
`,
			wantErr: "fetch_timeout_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "feeds: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
}
