package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/UTD-JLA/hashdict/pkg/orderedmap"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	BucketCount   int        `toml:"bucket_count"`
	HashCacheSize int        `toml:"hash_cache_size"`
	LogLevel      string     `toml:"log_level"`
	Dump          DumpConfig `toml:"dump"`
}

type DumpConfig struct {
	// Compression is used for dump paths without a recognised extension:
	// "none", "gzip" or "zstd".
	Compression string `toml:"compression"`
}

func NewConfig() *Config {
	return &Config{
		BucketCount:   orderedmap.DefaultBucketCount,
		HashCacheSize: orderedmap.DefaultHashCacheSize,
		LogLevel:      "info",
		Dump: DumpConfig{
			Compression: "none",
		},
	}
}

func (c *Config) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	defer file.Close()

	err = toml.NewDecoder(file).Decode(c)
	if err != nil {
		return err
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	if c.BucketCount < 1 {
		return fmt.Errorf("bucket_count must be positive, got %d", c.BucketCount)
	}

	if c.HashCacheSize < 0 {
		return fmt.Errorf("hash_cache_size must not be negative, got %d", c.HashCacheSize)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	switch c.Dump.Compression {
	case "none", "gzip", "zstd":
	default:
		return fmt.Errorf("unknown dump compression %q", c.Dump.Compression)
	}

	return nil
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	return level, nil
}

func (c *Config) DictOptions(logger *slog.Logger) []orderedmap.Option[any] {
	return []orderedmap.Option[any]{
		orderedmap.WithBucketCount[any](c.BucketCount),
		orderedmap.WithHashCacheSize[any](c.HashCacheSize),
		orderedmap.WithLogger[any](logger),
	}
}
