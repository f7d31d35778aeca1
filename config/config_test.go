package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, 0.5, cfg.Retrieval.MinConfidence)
	assert.Equal(t, 1.2, cfg.Retrieval.BoostFactor)
	assert.True(t, cfg.AI.ExtractionEnabled)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[server]
host = "127.0.0.1"
port = 9000

[ai]
embedding_model = "nomic-embed-text"

[retrieval]
top_k = 10
per_query_k = 4
min_confidence = 0.3
boost_factor = 1.5
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "nomic-embed-text", cfg.AI.EmbeddingModel)
	assert.Equal(t, 10, cfg.Retrieval.TopK)
	assert.Equal(t, 0.3, cfg.Retrieval.MinConfidence)

	// Untouched sections keep their defaults.
	assert.Equal(t, "data/medcode", cfg.Storage.Path)
	assert.Equal(t, "qwen2.5:3b", cfg.AI.ExtractorModel)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDCODE_SERVER_PORT", "9100")
	t.Setenv("MEDCODE_EMBEDDING_MODEL", "bge-small")
	t.Setenv("MEDCODE_EXTRACTION_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "bge-small", cfg.AI.EmbeddingModel)
	assert.False(t, cfg.AI.ExtractionEnabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9000\n"), 0o644))

	t.Setenv("MEDCODE_SERVER_PORT", "9200")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"zero top_k", func(c *Config) { c.Retrieval.TopK = 0 }},
		{"zero per_query_k", func(c *Config) { c.Retrieval.PerQueryK = 0 }},
		{"negative min_confidence", func(c *Config) { c.Retrieval.MinConfidence = -0.1 }},
		{"min_confidence above one", func(c *Config) { c.Retrieval.MinConfidence = 1.1 }},
		{"boost factor at one", func(c *Config) { c.Retrieval.BoostFactor = 1.0 }},
		{"zero batch size", func(c *Config) { c.Ingestion.BatchSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
