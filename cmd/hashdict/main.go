package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
)

var configPath = flag.String("config", "", "Path to config file")
var scriptPath = flag.String("script", "", "Read commands from this file instead of stdin")

func main() {
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	config := NewConfig()

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	level, err := config.Level()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	logger.Debug("starting shell",
		slog.Int("bucket_count", config.BucketCount),
		slog.Int("hash_cache_size", config.HashCacheSize))

	var input io.Reader = os.Stdin

	if *scriptPath != "" {
		file, err := os.Open(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}

		defer file.Close()

		input = file
	}

	shell := NewShell(config, logger)

	if err = shell.Run(input, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
