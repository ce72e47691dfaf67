package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"MTDUMP_SCHEMAS", "MTDUMP_CONCURRENCY", "MTDUMP_OUTPUT", "MTDUMP_LOG_LEVEL", "MTDUMP_LOG_ENCODING"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "mtdump.yaml")

	cfg := DefaultConfig()
	cfg.Concurrency = 8
	cfg.Output = "json"
	cfg.Schemas = []string{"schemas/mt999.yaml"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("concurrency: [1, 2"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MTDUMP_CONCURRENCY", "16")
	t.Setenv("MTDUMP_OUTPUT", "json")
	t.Setenv("MTDUMP_LOG_LEVEL", "debug")
	t.Setenv("MTDUMP_SCHEMAS", "a.yaml"+string(os.PathListSeparator)+" b.json ")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, 16, cfg.Concurrency)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"a.yaml", "b.json"}, cfg.Schemas)
}

func TestConfig_EnvOverrideIgnoresBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("MTDUMP_CONCURRENCY", "many")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"unknown output", func(c *Config) { c.Output = "xml" }},
		{"unknown encoding", func(c *Config) { c.Logging.Encoding = "logfmt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
