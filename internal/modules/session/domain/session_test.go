package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stillpoint/internal/platform/errors"
)

func TestNewFormatsUTCMillis(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("EST", -5*3600)
	s := New(300, time.Date(2026, 1, 15, 5, 30, 0, 0, loc))
	assert.Equal(t, "2026-01-15T10:30:00.000Z", s.Timestamp)
	require.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		session Session
		ok      bool
	}{
		{"valid", Session{Duration: 600, Timestamp: "2026-01-15T10:30:00.000Z"}, true},
		{"offset without millis", Session{Duration: 60, Timestamp: "2026-01-15T10:30:00+02:00"}, true},
		{"zero duration", Session{Duration: 0, Timestamp: "2026-01-15T10:30:00Z"}, false},
		{"negative duration", Session{Duration: -5, Timestamp: "2026-01-15T10:30:00Z"}, false},
		{"blank timestamp", Session{Duration: 60, Timestamp: "  "}, false},
		{"date only", Session{Duration: 60, Timestamp: "2026-01-15"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.session.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}
}

func TestPrependKeepsNewestFirstAndCaps(t *testing.T) {
	t.Parallel()
	a := Session{Duration: 60, Timestamp: "2026-01-01T00:00:00.000Z"}
	b := Session{Duration: 120, Timestamp: "2026-01-02T00:00:00.000Z"}
	c := Session{Duration: 180, Timestamp: "2026-01-03T00:00:00.000Z"}

	log := Prepend(nil, a, 0)
	log = Prepend(log, b, 0)
	assert.Equal(t, []Session{b, a}, log)

	capped := Prepend(log, c, 2)
	assert.Equal(t, []Session{c, b}, capped)
	assert.Len(t, log, 2, "input slice must not be modified")
}

func TestCompletedAt(t *testing.T) {
	t.Parallel()
	at, ok := Session{Duration: 1, Timestamp: "2026-01-15T10:30:00.250Z"}.CompletedAt()
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, time.Duration(at.Nanosecond()))
	_, ok = Session{Duration: 1, Timestamp: "yesterday"}.CompletedAt()
	assert.False(t, ok)
}
