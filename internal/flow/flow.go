// Package flow implements the per-session state machine of the study:
// collect a participant code, then walk a fixed sequence of hashtag
// rounds, persisting each accepted response before advancing.
package flow

import (
	"fmt"
	"log"
	"strings"
	"time"

	"hashtag-study/internal/session"
	"hashtag-study/internal/storage"
	"hashtag-study/internal/validate"
)

const (
	introText = "Starting the game now."
	doneText  = "All done. Thank you!"

	welcomeText = "Welcome. Please enter your participant code to begin (example: P014).\n" +
		"Do not enter your name or any personal info."
	welcomeBackText = "Welcome back. Progress reset to the first round; send any message to receive your prompt."
	restartText     = "Restarted. Please enter your participant code to begin (example: P014)."

	invalidCodeText = "That does not look like a valid participant code.\n" +
		"Please enter something like P014 (letters + numbers only)."
	invalidHashtagText = "Please reply with a single hashtag-style word using only letters and numbers.\n" +
		"No spaces. Example: #breakingnews"

	withdrawnText       = "You previously withdrew. If this is a mistake, contact the research team."
	withdrawConfirmText = "You have withdrawn. No further responses will be recorded. Thank you."

	saveFailedText = "Sorry, your response could not be recorded. Please send it again."

	promptGuidance = "Reply with a hashtag (example: #breakingnews)."
)

// EventKind classifies one inbound event from the transport.
type EventKind int

const (
	EventText EventKind = iota
	EventStart
	EventRestart
	EventWithdraw
)

type Event struct {
	Kind EventKind
	Text string
}

// Engine applies events to sessions. It is synchronous and does no
// waiting itself; the transport delivers one event per call and sends
// the returned replies in order.
type Engine struct {
	prompts         []string
	store           storage.Store
	allowWithdrawal bool
	now             func() time.Time
}

func New(prompts []string, store storage.Store, allowWithdrawal bool) *Engine {
	return &Engine{
		prompts:         prompts,
		store:           store,
		allowWithdrawal: allowWithdrawal,
		now:             time.Now,
	}
}

// Handle applies one event to the session and returns the replies to
// send, in order. A nil result means the event was ignored. The
// session is locked for the whole transition, so concurrent deliveries
// for one chat cannot lose updates.
func (e *Engine) Handle(s *session.Session, ev Event) []string {
	s.Lock()
	defer s.Unlock()

	// Withdrawal supersedes everything, commands included.
	if s.Withdrawn {
		return []string{withdrawnText}
	}

	switch ev.Kind {
	case EventStart:
		return e.handleStart(s)
	case EventRestart:
		return e.handleRestart(s)
	case EventWithdraw:
		return e.handleWithdraw(s)
	case EventText:
		return e.handleText(s, ev.Text)
	default:
		return nil
	}
}

// handleStart resets round progress but keeps the participant code, so
// a returning participant does not have to identify again.
func (e *Engine) handleStart(s *session.Session) []string {
	s.RoundIndex = 0
	s.AwaitingResponse = false
	if s.ParticipantCode != "" {
		return []string{welcomeBackText}
	}
	return []string{welcomeText}
}

// handleRestart clears identity and progress in full.
func (e *Engine) handleRestart(s *session.Session) []string {
	s.ParticipantCode = ""
	s.RoundIndex = 0
	s.AwaitingResponse = false
	return []string{restartText}
}

func (e *Engine) handleWithdraw(s *session.Session) []string {
	if !e.allowWithdrawal {
		return nil
	}
	s.Withdrawn = true
	s.AwaitingResponse = false
	// drop the code so nothing later can be linked to it
	s.ParticipantCode = ""
	s.RoundIndex = 0
	return []string{withdrawConfirmText}
}

func (e *Engine) handleText(s *session.Session, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	switch s.State(len(e.prompts)) {
	case session.AwaitingCode:
		code, ok := validate.ParticipantCode(text)
		if !ok {
			return []string{invalidCodeText}
		}
		s.ParticipantCode = code
		return append([]string{introText}, e.enterRound(s))

	case session.AwaitingResponse:
		tag, ok := validate.Hashtag(text)
		if !ok {
			return []string{invalidHashtagText}
		}
		rec := storage.Record{
			Timestamp:     e.now(),
			ParticipantID: s.ParticipantCode,
			RoundIndex:    s.RoundIndex,
			Hashtag:       tag,
			Prompt:        e.prompts[s.RoundIndex],
		}
		if err := e.store.Append(rec); err != nil {
			log.Printf("failed to record response (participant=%s round=%d): %v",
				s.ParticipantCode, s.RoundIndex, err)
			return []string{saveFailedText}
		}
		s.RoundIndex++
		s.AwaitingResponse = false
		return []string{e.enterRound(s)}

	default:
		// BetweenRounds or Complete: re-issue whatever comes next.
		return []string{e.enterRound(s)}
	}
}

// enterRound moves the session into the next round, or finishes the
// study when no rounds remain. It returns the single reply for that
// step.
func (e *Engine) enterRound(s *session.Session) string {
	if s.RoundIndex >= len(e.prompts) {
		s.AwaitingResponse = false
		return doneText
	}
	s.AwaitingResponse = true
	return fmt.Sprintf("%s\n%s", e.prompts[s.RoundIndex], promptGuidance)
}
