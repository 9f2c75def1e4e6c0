package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/atlasroulette/atlas-tracker/internal/api"
	"github.com/atlasroulette/atlas-tracker/internal/app"
	"github.com/atlasroulette/atlas-tracker/internal/config"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	addrOverride := flag.String("addr", "", "override API listen address")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env: %v", err)
	}

	cfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		log.Printf("warning: config file: %v, using defaults", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if *addrOverride != "" {
		cfg.API.Addr = *addrOverride
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf(
		"atlas-tracker starting (addr=%s store=%s unit=%.0f stop_loss=%.0f stop_profit=%.0f telegram=%t recorder=%t)",
		cfg.API.Addr,
		cfg.StorePath,
		cfg.Bankroll.UnitSize,
		cfg.Bankroll.StopLoss,
		cfg.Bankroll.StopProfit,
		cfg.Telegram.Enabled,
		cfg.Recorder.Enabled,
	)

	tracker, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	server := api.NewServer(cfg.API.Addr, tracker, cfg.API.AllowedOrigins)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("api server: %v", err)
	}

	<-sigCh
	log.Println("shutdown signal received")
	cancel()

	if err := server.Shutdown(context.Background()); err != nil {
		log.Printf("warning: api shutdown: %v", err)
	}
	tracker.Shutdown(context.Background())
}
