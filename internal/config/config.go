// Package config provides configuration loading and structs for the Mediphant server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. API keys are not part
// of the file; they come from the environment (OPENAI_API_KEY,
// PINECONE_API_KEY, PINECONE_INDEX_HOST).
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	Indexer   IndexerConfig   `yaml:"indexer"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig holds the corpus document location.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// RetrievalConfig holds retrieval settings.
type RetrievalConfig struct {
	TopK           int `yaml:"top_k"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the remote-call timeout as a duration.
func (r *RetrievalConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// OpenAIConfig holds model names and the embedding dimension.
type OpenAIConfig struct {
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	Dimensions     int    `yaml:"dimensions"`
}

// FallbackConfig holds the local snapshot settings.
type FallbackConfig struct {
	SnapshotPath string `yaml:"snapshot_path"`
	Watch        *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether the server reloads the snapshot on change;
// defaults to true when unset.
func (f *FallbackConfig) WatchOrDefault() bool {
	if f.Watch != nil {
		return *f.Watch
	}
	return true
}

// IndexerConfig holds offline indexing settings.
type IndexerConfig struct {
	Workers int `yaml:"workers"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, configDir)
	cfg.Fallback.SnapshotPath = expandPath(cfg.Fallback.SnapshotPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
