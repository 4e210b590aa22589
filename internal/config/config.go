package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Dataset
	DatasetPath string `env:"DATASET_PATH" envDefault:"data/hashtag_study.csv"`

	// Study content
	PromptsFilePath string `env:"PROMPTS_FILE_PATH" envDefault:"prompts/rounds.yaml"`

	// Feature flags
	AllowWithdrawal bool `env:"ALLOW_WITHDRAWAL" envDefault:"false"`

	// Optional cron expression for nudging stalled sessions; empty
	// disables the reminder sweep.
	ReminderCron string `env:"REMINDER_CRON"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
