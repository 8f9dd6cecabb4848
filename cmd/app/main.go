package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"AstroFeed/internal/di"
	"AstroFeed/pkg/config"
	"AstroFeed/pkg/util"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", "serve", "serve | now | daily | weekly")
	timestamp := flag.String("timestamp", "", "RFC3339 or unix seconds; one-shot modes only, defaults to current time")
	output := flag.String("output", "", "override feed output directory")
	flag.Parse()

	var cfg *config.Config
	var err error
	if _, statErr := os.Stat(*configPath); statErr == nil {
		cfg, err = config.LoadWithEnv(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *output != "" {
		cfg.Feeds.OutputDir = *output
	}

	log.Printf("env=%s providers=%v output=%s", cfg.Environment, cfg.Providers.Order, cfg.Feeds.OutputDir)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	switch *mode {
	case "serve":
		if err := app.Run(); err != nil {
			log.Printf("app error: %v", err)
			os.Exit(1)
		}
	case "now", "daily", "weekly":
		ts := util.ParseTimeDefault(*timestamp, time.Now().UTC())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := app.RunOnce(ctx, *mode, ts); err != nil {
			log.Printf("%s generation failed: %v", *mode, err)
			os.Exit(1)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
