package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken  string `env:"TELEGRAM_BOT_TOKEN,required"`
	OpenAIKey string `env:"OPENAI_API_KEY,required"`

	// Trading API (registration + photo upload)
	BaseURL string `env:"BASE_URL,required"`

	// Admin
	AdminID int64 `env:"ADMIN_TELEGRAM_ID"`

	// Model selection
	Model string `env:"AI_MODEL" envDefault:"o4-mini"`

	// Storage
	HistoryDir string `env:"CHAT_HISTORY_DIR" envDefault:"chat_history"`
	UsersDir   string `env:"USERS_DIR" envDefault:"users"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	return c.AdminID != 0 && c.AdminID == telegramID
}
