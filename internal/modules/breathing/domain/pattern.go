package domain

import (
	"fmt"
	"strings"

	apperrors "stillpoint/internal/platform/errors"
)

type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
	PhaseRest   Phase = "rest"
)

// Pattern is one breathing exercise. Durations are whole seconds; Hold and
// Rest may be zero, in which case the phase is skipped.
type Pattern struct {
	ID          string
	Name        string
	Description string
	Inhale      int
	Hold        int
	Exhale      int
	Rest        int
	Cycles      int
}

type segment struct {
	phase   Phase
	seconds int
}

// segments lists the non-empty phases of one cycle in order.
func (p Pattern) segments() []segment {
	all := []segment{{PhaseInhale, p.Inhale}, {PhaseHold, p.Hold}, {PhaseExhale, p.Exhale}, {PhaseRest, p.Rest}}
	out := all[:0]
	for _, s := range all {
		if s.seconds > 0 {
			out = append(out, s)
		}
	}
	return out
}

func (p Pattern) CycleSeconds() int {
	return p.Inhale + p.Hold + p.Exhale + p.Rest
}

func (p Pattern) TotalSeconds() int {
	return p.CycleSeconds() * p.Cycles
}

func (p Pattern) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: breathing pattern needs an id", apperrors.ErrValidation)
	}
	if p.Inhale < 1 || p.Exhale < 1 {
		return fmt.Errorf("%w: pattern %s needs inhale and exhale of at least 1s", apperrors.ErrValidation, p.ID)
	}
	if p.Hold < 0 || p.Rest < 0 {
		return fmt.Errorf("%w: pattern %s has a negative pause", apperrors.ErrValidation, p.ID)
	}
	if p.Cycles < 1 {
		return fmt.Errorf("%w: pattern %s needs at least one cycle", apperrors.ErrValidation, p.ID)
	}
	return nil
}

func DefaultPatterns() []Pattern {
	return []Pattern{
		{ID: "478", Name: "4-7-8 Breathing", Description: "Inhale for 4 seconds, hold for 7, exhale for 8", Inhale: 4, Hold: 7, Exhale: 8, Cycles: 4},
		{ID: "box", Name: "Box Breathing", Description: "Equal inhale, hold, exhale and rest", Inhale: 4, Hold: 4, Exhale: 4, Rest: 4, Cycles: 5},
		{ID: "calming", Name: "Calming Breath", Description: "A long exhale to settle the body", Inhale: 4, Exhale: 6, Cycles: 6},
		{ID: "energizing", Name: "Energizing Breath", Description: "Quick even breaths to lift energy", Inhale: 2, Exhale: 2, Cycles: 10},
		{ID: "deep_relaxation", Name: "Deep Relaxation", Description: "Long, deep breaths with a short hold", Inhale: 6, Hold: 2, Exhale: 8, Cycles: 4},
	}
}

// Catalog is an ordered, validated set of patterns.
type Catalog struct {
	patterns []Pattern
	byID     map[string]int
}

func NewCatalog(patterns []Pattern) (Catalog, error) {
	c := Catalog{patterns: make([]Pattern, 0, len(patterns)), byID: make(map[string]int, len(patterns))}
	for _, p := range patterns {
		if err := p.Validate(); err != nil {
			return Catalog{}, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate breathing pattern %s", apperrors.ErrValidation, p.ID)
		}
		c.byID[p.ID] = len(c.patterns)
		c.patterns = append(c.patterns, p)
	}
	return c, nil
}

func (c Catalog) All() []Pattern {
	return append([]Pattern(nil), c.patterns...)
}

func (c Catalog) Get(id string) (Pattern, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: breathing pattern %q", apperrors.ErrNotFound, id)
	}
	return c.patterns[idx], nil
}
