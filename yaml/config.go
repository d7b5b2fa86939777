// Package yaml loads mdubot configuration from YAML files, merged with
// environment variables and built-in defaults.
package yaml

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all mdubot settings.
type Config struct {
	Ollama struct {
		ServerURL  string  `yaml:"server_url"`
		ChatModel  string  `yaml:"chat_model"`
		EmbedModel string  `yaml:"embed_model"`
		EmbedRPS   float64 `yaml:"embed_rps"`
	} `yaml:"ollama"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Crawler struct {
		SnapshotDir  string  `yaml:"snapshot_dir"`
		MinDelaySecs float64 `yaml:"min_delay_secs"`
		MaxDelaySecs float64 `yaml:"max_delay_secs"`
		TimeoutSecs  float64 `yaml:"timeout_secs"`
	} `yaml:"crawler"`

	Index struct {
		ChunkSize    int `yaml:"chunk_size"`
		ChunkOverlap int `yaml:"chunk_overlap"`
		Concurrency  int `yaml:"concurrency"`
	} `yaml:"index"`
}

// Load reads configuration from path. An empty path tries the default
// locations and falls back to built-in defaults when no file exists.
// Environment variables (OLLAMA_HOST, MDUBOT_DB) override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, loc := range defaultLocations() {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	mergeEnv(config)
	applyDefaults(config)
	return config, nil
}

func defaultLocations() []string {
	locations := []string{"mdubot.yaml", "mdubot.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "mdubot", "config.yaml"))
	}
	return locations
}

func mergeEnv(config *Config) {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		config.Ollama.ServerURL = host
	}
	if db := os.Getenv("MDUBOT_DB"); db != "" {
		config.Database.Path = db
	}
}

func applyDefaults(config *Config) {
	if config.Ollama.ServerURL == "" {
		config.Ollama.ServerURL = "http://localhost:11434"
	}
	if config.Ollama.ChatModel == "" {
		config.Ollama.ChatModel = "llama3.1:8b"
	}
	if config.Ollama.EmbedModel == "" {
		config.Ollama.EmbedModel = "mxbai-embed-large"
	}
	if config.Ollama.EmbedRPS == 0 {
		config.Ollama.EmbedRPS = 10
	}

	if config.Database.Path == "" {
		config.Database.Path = "mdubot.db"
	}

	if config.Crawler.SnapshotDir == "" {
		config.Crawler.SnapshotDir = "mdu_data"
	}
	if config.Crawler.MinDelaySecs == 0 {
		config.Crawler.MinDelaySecs = 2.0
	}
	if config.Crawler.MaxDelaySecs == 0 {
		config.Crawler.MaxDelaySecs = 5.0
	}
	if config.Crawler.TimeoutSecs == 0 {
		config.Crawler.TimeoutSecs = 10.0
	}

	if config.Index.ChunkSize == 0 {
		config.Index.ChunkSize = 1000
	}
	if config.Index.ChunkOverlap == 0 {
		config.Index.ChunkOverlap = 200
	}
	if config.Index.Concurrency == 0 {
		config.Index.Concurrency = 4
	}
}
