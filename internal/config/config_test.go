package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Bankroll.Initial != 5000 || cfg.Bankroll.UnitSize != 25 {
		t.Fatalf("bankroll defaults: %+v", cfg.Bankroll)
	}
	if cfg.Bankroll.StopLoss != 1000 || cfg.Bankroll.StopProfit != 2000 {
		t.Fatalf("stop defaults: %+v", cfg.Bankroll)
	}
	if cfg.Atlas.MaxBets != 12 || cfg.Atlas.MinConfidence != 65 {
		t.Fatalf("atlas defaults: %+v", cfg.Atlas)
	}
	if cfg.API.Addr != ":8080" {
		t.Fatalf("api addr default: %q", cfg.API.Addr)
	}
	if cfg.Telegram.Enabled {
		t.Fatal("telegram should default to disabled")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
log_level: debug
bankroll:
  initial: 2500
  unit_size: 10
atlas:
  max_bets: 8
api:
  addr: ":9000"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bankroll.Initial != 2500 || cfg.Bankroll.UnitSize != 10 {
		t.Fatalf("bankroll overrides: %+v", cfg.Bankroll)
	}
	if cfg.Atlas.MaxBets != 8 {
		t.Fatalf("atlas override: %+v", cfg.Atlas)
	}
	if cfg.API.Addr != ":9000" {
		t.Fatalf("api override: %q", cfg.API.Addr)
	}
	// Untouched keys keep their defaults.
	if cfg.Bankroll.StopLoss != 1000 {
		t.Fatalf("stop_loss default lost: %+v", cfg.Bankroll)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ATLAS_TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("ATLAS_TELEGRAM_CHAT_ID", "chat")
	t.Setenv("ATLAS_API_ADDR", ":7777")
	t.Setenv("ATLAS_DB_PATH", "/tmp/x.db")

	cfg := Default()
	cfg.ApplyEnv()
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken != "tok" || cfg.Telegram.ChatID != "chat" {
		t.Fatalf("telegram env: %+v", cfg.Telegram)
	}
	if cfg.API.Addr != ":7777" {
		t.Fatalf("api env: %q", cfg.API.Addr)
	}
	if !cfg.Recorder.Enabled || cfg.Recorder.Path != "/tmp/x.db" {
		t.Fatalf("recorder env: %+v", cfg.Recorder)
	}
}
