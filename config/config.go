// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the file-based configuration for the suggestion
// service. Values load from a TOML file, then environment variables
// override individual fields, so deployments can keep one config file and
// vary hosts and paths per environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type StorageConfig struct {
	Path     string `toml:"path"`
	InMemory bool   `toml:"in_memory"`
}

type AIConfig struct {
	EmbeddingHost     string `toml:"embedding_host"`
	ExtractorHost     string `toml:"extractor_host"`
	EmbeddingModel    string `toml:"embedding_model"`
	ExtractorModel    string `toml:"extractor_model"`
	ExtractionEnabled bool   `toml:"extraction_enabled"`
}

type RetrievalConfig struct {
	TopK          int     `toml:"top_k"`
	PerQueryK     int     `toml:"per_query_k"`
	MinConfidence float64 `toml:"min_confidence"`
	BoostFactor   float64 `toml:"boost_factor"`
}

type IngestionConfig struct {
	DatasetPath string `toml:"dataset_path"`
	BatchSize   int    `toml:"batch_size"`
	PoolSize    int    `toml:"pool_size"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	AI        AIConfig        `toml:"ai"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Ingestion IngestionConfig `toml:"ingestion"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Storage: StorageConfig{
			Path: "data/medcode",
		},
		AI: AIConfig{
			EmbeddingHost:     "http://localhost:11434/v1",
			ExtractorHost:     "http://localhost:11434/v1",
			EmbeddingModel:    "all-minilm",
			ExtractorModel:    "qwen2.5:3b",
			ExtractionEnabled: true,
		},
		Retrieval: RetrievalConfig{
			TopK:          5,
			PerQueryK:     3,
			MinConfidence: 0.5,
			BoostFactor:   1.2,
		},
		Ingestion: IngestionConfig{
			DatasetPath: "data/codes.jsonl",
			BatchSize:   64,
		},
	}
}

// Load reads a TOML config file over the defaults and applies environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides individual fields from MEDCODE_* environment
// variables. Unparseable numeric values are ignored in favor of the file
// value.
func (c *Config) applyEnv() {
	if v := os.Getenv("MEDCODE_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("MEDCODE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("MEDCODE_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("MEDCODE_EMBEDDING_HOST"); v != "" {
		c.AI.EmbeddingHost = v
	}
	if v := os.Getenv("MEDCODE_EXTRACTOR_HOST"); v != "" {
		c.AI.ExtractorHost = v
	}
	if v := os.Getenv("MEDCODE_EMBEDDING_MODEL"); v != "" {
		c.AI.EmbeddingModel = v
	}
	if v := os.Getenv("MEDCODE_EXTRACTOR_MODEL"); v != "" {
		c.AI.ExtractorModel = v
	}
	if v := os.Getenv("MEDCODE_EXTRACTION_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.AI.ExtractionEnabled = enabled
		}
	}
	if v := os.Getenv("MEDCODE_DATASET_PATH"); v != "" {
		c.Ingestion.DatasetPath = v
	}
}

// Validate rejects values no component would accept.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval top_k must be >= 1, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.PerQueryK < 1 {
		return fmt.Errorf("retrieval per_query_k must be >= 1, got %d", c.Retrieval.PerQueryK)
	}
	if c.Retrieval.MinConfidence < 0 || c.Retrieval.MinConfidence > 1 {
		return fmt.Errorf("retrieval min_confidence must be in [0, 1], got %g", c.Retrieval.MinConfidence)
	}
	if c.Retrieval.BoostFactor <= 1.0 {
		return fmt.Errorf("retrieval boost_factor must be > 1.0, got %g", c.Retrieval.BoostFactor)
	}
	if c.Ingestion.BatchSize < 1 {
		return fmt.Errorf("ingestion batch_size must be >= 1, got %d", c.Ingestion.BatchSize)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
