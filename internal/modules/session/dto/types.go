package dto

import "time"

type SaveInput struct {
	Duration    int
	CompletedAt time.Time
}

// Record is the persisted JSON shape of a session.
type Record struct {
	Duration  int    `json:"duration"`
	Timestamp string `json:"timestamp"`
}

type SessionOutput struct {
	Duration  int
	Timestamp string
	// CompletedAt is zero when Timestamp cannot be parsed.
	CompletedAt time.Time
}
