package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "stillpoint/internal/platform/errors"
)

// TimestampLayout matches the ISO-8601 strings written by earlier releases
// (UTC, millisecond precision, trailing Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Session is one completed countdown. Duration is the configured length in
// seconds, not elapsed wall time.
type Session struct {
	Duration  int    `json:"duration"`
	Timestamp string `json:"timestamp"`
}

func New(durationSeconds int, completedAt time.Time) Session {
	return Session{Duration: durationSeconds, Timestamp: FormatTimestamp(completedAt)}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC 3339 date-time, with or without fractional seconds.
func ParseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (s Session) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("%w: session duration must be positive, got %d", apperrors.ErrValidation, s.Duration)
	}
	if strings.TrimSpace(s.Timestamp) == "" {
		return fmt.Errorf("%w: session timestamp is required", apperrors.ErrValidation)
	}
	if _, err := ParseTimestamp(s.Timestamp); err != nil {
		return fmt.Errorf("%w: session timestamp %q is not ISO-8601", apperrors.ErrValidation, s.Timestamp)
	}
	return nil
}

// CompletedAt parses Timestamp; ok is false for records that predate validation.
func (s Session) CompletedAt() (time.Time, bool) {
	t, err := ParseTimestamp(s.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Prepend returns a new log with s first, trimmed to max entries when max > 0.
func Prepend(log []Session, s Session, max int) []Session {
	next := make([]Session, 0, len(log)+1)
	next = append(next, s)
	next = append(next, log...)
	if max > 0 && len(next) > max {
		next = next[:max]
	}
	return next
}
