package session

import "sync"

// State is the conversational position of one chat, derived from the
// session fields in a single place so callers never re-interpret field
// combinations themselves.
type State int

const (
	// AwaitingCode: no participant code stored yet; the next plain
	// text is interpreted as a code.
	AwaitingCode State = iota
	// AwaitingResponse: a round prompt is outstanding; the next plain
	// text is interpreted as a hashtag response.
	AwaitingResponse
	// BetweenRounds: identified but no prompt outstanding and rounds
	// remain.
	BetweenRounds
	// Complete: every round has a persisted response.
	Complete
	// Withdrawn: the participant opted out; supersedes everything.
	Withdrawn
)

// Session tracks where one chat is in the study flow.
//
// ParticipantCode is stored after the user enters a valid code and is
// the only identity ever written to the dataset; the chat ID that keys
// the session is used for routing only. The embedded mutex gives each
// session exclusive access during a transition.
type Session struct {
	sync.Mutex

	ParticipantCode  string
	RoundIndex       int
	AwaitingResponse bool
	Withdrawn        bool
}

// State derives the tagged state. promptCount is the length of the
// configured prompt sequence. Callers must hold the session lock.
func (s *Session) State(promptCount int) State {
	switch {
	case s.Withdrawn:
		return Withdrawn
	case s.ParticipantCode == "":
		return AwaitingCode
	case s.RoundIndex >= promptCount:
		return Complete
	case s.AwaitingResponse:
		return AwaitingResponse
	default:
		return BetweenRounds
	}
}

// Registry owns every session for the process lifetime, keyed by chat
// ID. Sessions are created lazily on first contact and never evicted.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Resolve returns the session for key, creating a blank one if this is
// the first contact. Safe for concurrent callers on the same or
// different keys; concurrent resolutions of one key observe the same
// session.
func (r *Registry) Resolve(key int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		s = &Session{}
		r.sessions[key] = s
	}
	return s
}

// Snapshot copies the current key->session map so callers can iterate
// without holding the registry lock.
func (r *Registry) Snapshot() map[int64]*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]*Session, len(r.sessions))
	for k, s := range r.sessions {
		out[k] = s
	}
	return out
}
