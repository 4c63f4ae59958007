// Package config loads the application configuration from an optional YAML
// file, falling back to defaults when the file is absent.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	Overlap   int `yaml:"overlap"`
}

// SearchConfig configures result ranking.
type SearchConfig struct {
	DefaultTopK int `yaml:"default_top_k"`
}

// DiscoveryConfig points at the static-asset host serving the document
// manifest. An empty base URL disables discovery.
type DiscoveryConfig struct {
	BaseURL string `yaml:"base_url"`
}

// EmbedderConfig selects the embedding backend. "placeholder" is the
// default; "openai" requires OPENAI_API_KEY in the environment.
type EmbedderConfig struct {
	Type      string `yaml:"type"`
	BatchSize int    `yaml:"batch_size"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Search    SearchConfig    `yaml:"search"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
}

// Load reads the config from path. A missing file yields defaults; a present
// but unparsable file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Chunker:  ChunkerConfig{ChunkSize: 500, Overlap: 100},
		Search:   SearchConfig{DefaultTopK: 5},
		Embedder: EmbedderConfig{Type: "placeholder"},
	}
}

// applyDefaults fills in zero values left by a sparse config file.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Port == "" {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = def.Chunker.ChunkSize
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = def.Chunker.Overlap
	}
	if cfg.Search.DefaultTopK == 0 {
		cfg.Search.DefaultTopK = def.Search.DefaultTopK
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = def.Embedder.Type
	}
}
