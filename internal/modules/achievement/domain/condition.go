package domain

import (
	"fmt"

	apperrors "stillpoint/internal/platform/errors"
)

type ConditionKind string

const (
	SessionCount       ConditionKind = "session_count"
	StreakLength       ConditionKind = "streak_length"
	CumulativeDuration ConditionKind = "cumulative_duration"
	MaxSessionDuration ConditionKind = "max_session_duration"
)

// Snapshot is everything a condition may look at.
type Snapshot struct {
	Durations     []int
	CurrentStreak int
}

// Condition is met once Measure reaches Threshold.
type Condition struct {
	Kind      ConditionKind
	Threshold int
}

func (c Condition) Validate() error {
	switch c.Kind {
	case SessionCount, StreakLength, CumulativeDuration, MaxSessionDuration:
	default:
		return fmt.Errorf("%w: unknown condition kind %q", apperrors.ErrCatalog, c.Kind)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: %s threshold must be positive", apperrors.ErrCatalog, c.Kind)
	}
	return nil
}

// Measure reduces the snapshot to the quantity the condition compares.
func (c Condition) Measure(s Snapshot) int {
	switch c.Kind {
	case SessionCount:
		return len(s.Durations)
	case StreakLength:
		return s.CurrentStreak
	case CumulativeDuration:
		total := 0
		for _, d := range s.Durations {
			total += d
		}
		return total
	case MaxSessionDuration:
		longest := 0
		for _, d := range s.Durations {
			if d > longest {
				longest = d
			}
		}
		return longest
	default:
		return 0
	}
}

func (c Condition) Met(s Snapshot) bool {
	return c.Measure(s) >= c.Threshold
}

// Percent is progress toward the threshold, capped at 100.
func (c Condition) Percent(s Snapshot) int {
	if c.Threshold <= 0 {
		return 0
	}
	p := c.Measure(s) * 100 / c.Threshold
	if p > 100 {
		return 100
	}
	return p
}
