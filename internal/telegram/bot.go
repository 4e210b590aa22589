// Package telegram adapts Telegram updates onto the study flow: it
// extracts (chat, event) pairs from inbound messages, runs them
// through the flow engine, and sends the replies back on the same
// chat. All study logic lives in internal/flow.
package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hashtag-study/internal/flow"
	"hashtag-study/internal/session"
)

type Bot struct {
	api             *tgbotapi.BotAPI
	s               sender
	sessions        *session.Registry
	engine          *flow.Engine
	allowWithdrawal bool
}

func New(botToken string, sessions *session.Registry, engine *flow.Engine, allowWithdrawal bool) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:             api,
		s:               botAPISender{api: api},
		sessions:        sessions,
		engine:          engine,
		allowWithdrawal: allowWithdrawal,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message != nil {
			b.handleMessage(update.Message)
		}
	}
}

// handleMessage converts one Telegram message to a flow event.
// Non-text messages (photos, stickers, joins) and unrecognized
// commands are dropped without a reply.
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.Text == "" {
		return
	}

	ev, ok := b.eventFor(msg)
	if !ok {
		return
	}

	sess := b.sessions.Resolve(msg.Chat.ID)
	for _, reply := range b.engine.Handle(sess, ev) {
		b.sendMessage(msg.Chat.ID, reply)
	}
}

func (b *Bot) eventFor(msg *tgbotapi.Message) (flow.Event, bool) {
	if !msg.IsCommand() {
		return flow.Event{Kind: flow.EventText, Text: msg.Text}, true
	}
	switch msg.Command() {
	case "start":
		return flow.Event{Kind: flow.EventStart}, true
	case "restart":
		return flow.Event{Kind: flow.EventRestart}, true
	case "withdraw":
		if !b.allowWithdrawal {
			return flow.Event{}, false
		}
		return flow.Event{Kind: flow.EventWithdraw}, true
	default:
		return flow.Event{}, false
	}
}

// SendTo delivers an out-of-band message on a chat. Used by the
// reminder scheduler.
func (b *Bot) SendTo(chatID int64, text string) {
	b.sendMessage(chatID, text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
