package storage

import "time"

// Record is one completed round response. It carries the canonical
// participant code, never the chat ID or any other transport
// identity. Records are appended in completion order and never
// mutated or deleted.
type Record struct {
	Timestamp     time.Time
	ParticipantID string
	RoundIndex    int
	Hashtag       string
	Prompt        string
}

// Store abstracts persistence of round responses. Implementations
// must be safe for concurrent use and must report append failures to
// the caller: an error means the record was not durably written and
// the round must not be considered complete.
type Store interface {
	Append(rec Record) error
}
