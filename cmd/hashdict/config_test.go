package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestConfigLoad(t *testing.T) {
	path := writeConfig(t, `
bucket_count = 16
hash_cache_size = 0
log_level = "debug"

[dump]
compression = "zstd"
`)

	config := NewConfig()
	require.NoError(t, config.Load(path))

	assert.Equal(t, 16, config.BucketCount)
	assert.Equal(t, 0, config.HashCacheSize)
	assert.Equal(t, "zstd", config.Dump.Compression)

	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	shell := NewShell(config, slog.Default())
	assert.Equal(t, 16, shell.Dict.Stats().BucketCount)
	assert.Equal(t, "zstd", shell.compressionFor("dump.out"))
	assert.Equal(t, "gzip", shell.compressionFor("dump.gz"))
}

func TestConfigDefaults(t *testing.T) {
	path := writeConfig(t, `log_level = "warn"`)

	config := NewConfig()
	require.NoError(t, config.Load(path))

	assert.Equal(t, 1028, config.BucketCount)
	assert.Equal(t, 128, config.HashCacheSize)
	assert.Equal(t, "none", config.Dump.Compression)
}

func TestConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"bucket count": `bucket_count = 0`,
		"cache size":   `hash_cache_size = -1`,
		"log level":    `log_level = "loud"`,
		"compression":  "[dump]\ncompression = \"lz4\"",
		"syntax":       `bucket_count = `,
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			config := NewConfig()
			assert.Error(t, config.Load(writeConfig(t, contents)))
		})
	}

	assert.Error(t, NewConfig().Load(filepath.Join(t.TempDir(), "missing.toml")))
}
