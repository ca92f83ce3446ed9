package domain

import (
	"fmt"
	"strings"

	apperrors "stillpoint/internal/platform/errors"
)

type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Condition   Condition
}

// Catalog is an ordered, validated set of definitions.
type Catalog struct {
	defs  []Definition
	index map[string]int
}

func NewCatalog(defs ...Definition) (Catalog, error) {
	if len(defs) == 0 {
		return Catalog{}, fmt.Errorf("%w: catalog is empty", apperrors.ErrCatalog)
	}
	c := Catalog{defs: make([]Definition, 0, len(defs)), index: make(map[string]int, len(defs))}
	for i, d := range defs {
		if strings.TrimSpace(d.ID) == "" {
			return Catalog{}, fmt.Errorf("%w: definition %d has no id", apperrors.ErrCatalog, i)
		}
		if strings.TrimSpace(d.Title) == "" {
			return Catalog{}, fmt.Errorf("%w: %s has no title", apperrors.ErrCatalog, d.ID)
		}
		if err := d.Condition.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("%s: %w", d.ID, err)
		}
		if _, dup := c.index[d.ID]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate id %s", apperrors.ErrCatalog, d.ID)
		}
		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// DefaultCatalog panics on an invalid built-in catalog; that is a build defect.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(defaultDefinitions...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c Catalog) Lookup(id string) (Definition, bool) {
	i, ok := c.index[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

func (c Catalog) Len() int {
	return len(c.defs)
}

var defaultDefinitions = []Definition{
	{ID: "first_session", Title: "First Steps", Description: "Complete your first meditation session", Icon: "🌱", Condition: Condition{Kind: SessionCount, Threshold: 1}},
	{ID: "streak_3", Title: "3-Day Streak", Description: "Meditate for 3 consecutive days", Icon: "🔥", Condition: Condition{Kind: StreakLength, Threshold: 3}},
	{ID: "streak_7", Title: "Week Warrior", Description: "Meditate for 7 consecutive days", Icon: "⚡", Condition: Condition{Kind: StreakLength, Threshold: 7}},
	{ID: "streak_30", Title: "Month Master", Description: "Meditate for 30 consecutive days", Icon: "👑", Condition: Condition{Kind: StreakLength, Threshold: 30}},
	{ID: "total_100_minutes", Title: "Century Club", Description: "Meditate for a total of 100 minutes", Icon: "💯", Condition: Condition{Kind: CumulativeDuration, Threshold: 100 * 60}},
	{ID: "total_1000_minutes", Title: "Meditation Master", Description: "Meditate for a total of 1000 minutes", Icon: "🧘", Condition: Condition{Kind: CumulativeDuration, Threshold: 1000 * 60}},
	{ID: "long_session_30", Title: "Deep Dive", Description: "Complete a 30-minute session", Icon: "🌊", Condition: Condition{Kind: MaxSessionDuration, Threshold: 30 * 60}},
	{ID: "long_session_60", Title: "Hour of Peace", Description: "Complete a 60-minute session", Icon: "🕉", Condition: Condition{Kind: MaxSessionDuration, Threshold: 60 * 60}},
	{ID: "sessions_10", Title: "Dedicated Practitioner", Description: "Complete 10 meditation sessions", Icon: "🎯", Condition: Condition{Kind: SessionCount, Threshold: 10}},
	{ID: "sessions_50", Title: "Mindfulness Expert", Description: "Complete 50 meditation sessions", Icon: "🏆", Condition: Condition{Kind: SessionCount, Threshold: 50}},
}
