package config

import "fmt"

// Validate checks high-impact runtime configuration constraints.
func (c Config) Validate() error {
	if c.Bankroll.Initial <= 0 {
		return fmt.Errorf("bankroll.initial must be > 0, got %f", c.Bankroll.Initial)
	}
	if c.Bankroll.UnitSize <= 0 {
		return fmt.Errorf("bankroll.unit_size must be > 0, got %f", c.Bankroll.UnitSize)
	}
	if c.Bankroll.StopLoss < 0 {
		return fmt.Errorf("bankroll.stop_loss must be >= 0, got %f", c.Bankroll.StopLoss)
	}
	if c.Bankroll.StopProfit < 0 {
		return fmt.Errorf("bankroll.stop_profit must be >= 0, got %f", c.Bankroll.StopProfit)
	}

	if c.Atlas.MaxBets < 1 || c.Atlas.MaxBets > 37 {
		return fmt.Errorf("atlas.max_bets must be within [1,37], got %d", c.Atlas.MaxBets)
	}
	if c.Atlas.MinConfidence < 0 || c.Atlas.MinConfidence > 100 {
		return fmt.Errorf("atlas.min_confidence must be within [0,100], got %f", c.Atlas.MinConfidence)
	}

	if c.API.Addr == "" {
		return fmt.Errorf("api.addr must not be empty")
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram enabled but bot_token or chat_id missing")
	}
	if c.Recorder.Enabled && c.Recorder.Path == "" {
		return fmt.Errorf("recorder enabled but path missing")
	}
	return nil
}
