// Package reminder nudges participants whose current round has been
// sitting unanswered. It is optional; deployments enable it with a
// cron expression.
package reminder

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"hashtag-study/internal/session"
)

const nudgeText = "Friendly reminder: your current round is still waiting for a hashtag response."

// SendFunc delivers one message to a chat. The Telegram bot provides
// this.
type SendFunc func(chatID int64, text string)

type Scheduler struct {
	cron        *cron.Cron
	sessions    *session.Registry
	send        SendFunc
	promptCount int
}

func New(sessions *session.Registry, promptCount int, send SendFunc) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		sessions:    sessions,
		send:        send,
		promptCount: promptCount,
	}
}

// Start registers the sweep under the given cron spec and starts the
// scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("reminder sweep scheduled (%s, UTC)", spec)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// sweep nudges every session currently waiting on a response.
// Withdrawn and completed sessions are left alone.
func (s *Scheduler) sweep() {
	for chatID, sess := range s.sessions.Snapshot() {
		sess.Lock()
		waiting := sess.State(s.promptCount) == session.AwaitingResponse
		sess.Unlock()
		if waiting {
			s.send(chatID, nudgeText)
		}
	}
}
