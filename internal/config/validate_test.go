package config

import "testing"

func TestValidateDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to be valid, got: %v", err)
	}
}

func TestValidateInvalidBankroll(t *testing.T) {
	cfg := Default()
	cfg.Bankroll.Initial = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected non-positive bankroll.initial to fail validation")
	}

	cfg = Default()
	cfg.Bankroll.UnitSize = -5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative bankroll.unit_size to fail validation")
	}

	cfg = Default()
	cfg.Bankroll.StopLoss = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative bankroll.stop_loss to fail validation")
	}
}

func TestValidateInvalidAtlas(t *testing.T) {
	cfg := Default()
	cfg.Atlas.MaxBets = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected atlas.max_bets = 0 to fail validation")
	}

	cfg = Default()
	cfg.Atlas.MaxBets = 38
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected atlas.max_bets > 37 to fail validation")
	}

	cfg = Default()
	cfg.Atlas.MinConfidence = 101
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected atlas.min_confidence > 100 to fail validation")
	}
}

func TestValidateTelegramCredentials(t *testing.T) {
	cfg := Default()
	cfg.Telegram.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected enabled telegram without credentials to fail validation")
	}
	cfg.Telegram.BotToken = "tok"
	cfg.Telegram.ChatID = "chat"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid telegram config, got: %v", err)
	}
}

func TestValidateRecorderPath(t *testing.T) {
	cfg := Default()
	cfg.Recorder.Enabled = true
	cfg.Recorder.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected enabled recorder without path to fail validation")
	}
}

func TestValidateEmptyAPIAddr(t *testing.T) {
	cfg := Default()
	cfg.API.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty api.addr to fail validation")
	}
}
