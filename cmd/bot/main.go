package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"hashtag-study/internal/config"
	"hashtag-study/internal/flow"
	"hashtag-study/internal/prompts"
	"hashtag-study/internal/reminder"
	"hashtag-study/internal/session"
	"hashtag-study/internal/storage"
	"hashtag-study/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	rounds, err := prompts.Load(cfg.PromptsFilePath)
	if err != nil {
		log.Printf("prompts file not usable at %s, using default sequence: %v", cfg.PromptsFilePath, err)
		rounds = prompts.Default
	}

	store, err := storage.NewCSVStore(cfg.DatasetPath)
	if err != nil {
		log.Fatalf("failed to init response store: %v", err)
	}

	registry := session.NewRegistry()
	engine := flow.New(rounds, store, cfg.AllowWithdrawal)

	bot, err := telegram.New(cfg.TelegramBotToken, registry, engine, cfg.AllowWithdrawal)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.ReminderCron != "" {
		sched := reminder.New(registry, len(rounds), bot.SendTo)
		if err := sched.Start(cfg.ReminderCron); err != nil {
			log.Fatalf("failed to start reminder scheduler: %v", err)
		}
		defer sched.Stop()
	}

	log.Printf("Hashtag study bot running (%d rounds, withdrawal=%v)", len(rounds), cfg.AllowWithdrawal)
	bot.Start(context.Background())
}
