package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel  string `yaml:"log_level"`
	StorePath string `yaml:"store_path"`

	Bankroll BankrollConfig `yaml:"bankroll"`
	Atlas    AtlasConfig    `yaml:"atlas"`
	Telegram TelegramConfig `yaml:"telegram"`
	API      APIConfig      `yaml:"api"`
	Recorder RecorderConfig `yaml:"recorder"`
}

type BankrollConfig struct {
	Initial    float64 `yaml:"initial"`
	UnitSize   float64 `yaml:"unit_size"`
	StopLoss   float64 `yaml:"stop_loss"`
	StopProfit float64 `yaml:"stop_profit"`
}

type AtlasConfig struct {
	MaxBets       int     `yaml:"max_bets"`
	MinConfidence float64 `yaml:"min_confidence"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type APIConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type RecorderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		StorePath: "data/state.json",
		Bankroll: BankrollConfig{
			Initial:    5000,
			UnitSize:   25,
			StopLoss:   1000,
			StopProfit: 2000,
		},
		Atlas: AtlasConfig{
			MaxBets:       12,
			MinConfidence: 65,
		},
		API: APIConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Recorder: RecorderConfig{
			Path: "data/atlas.db",
		},
	}
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv("ATLAS_TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
		c.Telegram.Enabled = true
	}
	if v := os.Getenv("ATLAS_TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := strings.TrimSpace(os.Getenv("ATLAS_API_ADDR")); v != "" {
		c.API.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("ATLAS_STORE_PATH")); v != "" {
		c.StorePath = v
	}
	if v := strings.TrimSpace(os.Getenv("ATLAS_DB_PATH")); v != "" {
		c.Recorder.Path = v
		c.Recorder.Enabled = true
	}
	if v := strings.TrimSpace(os.Getenv("ATLAS_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}
